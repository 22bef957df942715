package main

import (
	"context"
	"log"
	"os"

	"github.com/gauravhaldar/sosign-admin/internal/app/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
