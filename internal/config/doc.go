// Package config provides configuration parsing for gearrs.
//
// The configuration is stored in gearrs.json at the project root:
//
//	{
//	  "document": {
//	    "title": "Gearrs",
//	    "lang": "en",
//	    "text": "Hello world"
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "liveReload": true,
//	    "shutdownTimeout": "5s"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "region": "eu-west-1",
//	    "prefix": "preview",
//	    "key": "index.html"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "gearrs"
//	  }
//	}
//
// GEARRS_PORT, GEARRS_BUCKET, GEARRS_REGION and GEARRS_ENDPOINT override
// the file.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
