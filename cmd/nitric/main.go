package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/nitric/bootstrap"
	"github.com/fulldump/nitric/configuration"
)

var banner = `
       _ _        _
 _ __ (_) |_ _ __(_) ___
| '_ \| | __| '__| |/ __|
| | | | | |_| |  | | (__
|_| |_|_|\__|_|  |_|\___|
            version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _, err := bootstrap.Bootstrap(c)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	err = start()
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(1)
	}
}
