// Package config provides configuration parsing for vnative projects.
//
// The configuration is stored in vnative.json, or vnative.toml, at the
// project root. A project without either file runs with the defaults.
//
// # Configuration File Structure
//
//	{
//	  "app": "app.yaml",
//	  "rootKey": "main",
//	  "inspector": {
//	    "enabled": true,
//	    "addr": "localhost:7700"
//	  },
//	  "dev": {
//	    "debounce": "100ms",
//	    "watch": ["styles"]
//	  },
//	  "log": {"level": "debug"},
//	  "metrics": {"namespace": "vnative"}
//	}
//
// The same settings in TOML:
//
//	app = "app.yaml"
//
//	[inspector]
//	addr = "localhost:7700"
//
//	[dev]
//	debounce = "250ms"
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
