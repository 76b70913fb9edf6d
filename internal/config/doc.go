// Package config provides configuration parsing for Tessel applications.
//
// The configuration is stored in tessel.json next to the application binary
// or in the working directory. This package handles loading, saving, and
// validating it.
//
// # Configuration File Structure
//
//	{
//	  "maxFps": 60,
//	  "clickTolerance": 1,
//	  "tabNavigation": true,
//	  "strict": false,
//	  "resizeDebounceMs": 50,
//	  "mouse": true,
//	  "altScreen": true,
//	  "log": {
//	    "file": "tessel.log",
//	    "level": "info"
//	  },
//	  "devtools": {
//	    "enabled": false,
//	    "addr": "127.0.0.1:7070"
//	  },
//	  "metrics": {
//	    "namespace": "tessel"
//	  }
//	}
//
// Fields omitted from the file keep their defaults, including boolean
// fields whose default is true.
package config
