package main

import (
	"log"
	"os"

	"streampass/config"
	"streampass/controllers"
	dbpkg "streampass/db"
	"streampass/router"

	"github.com/gin-gonic/gin"
)

func main() {
	path := "config/config.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	conf := config.Get(path)

	dbpkg.SetConfigurations(conf)
	controllers.SetConfigurations(conf)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, conf)

	log.Printf("streampass listening on :%s", conf.ApiPort)
	log.Fatal(r.Run(":" + conf.ApiPort))
}
