package main

import "heyprodata_backend/internal/app"

func main() {
	app.Run()
}
