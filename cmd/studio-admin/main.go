package main

import (
	"fmt"
	"os"
)

// @title Yoga Studio Admin API
// @version 1.0.0
// @description Teachers, weekly courses and dated class instances for a yoga studio
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
