package main

import "partnerleads/internal/app"

// @title           Partner Leads API
// @version         1.0
// @description     Lead management for the partner-referral pipeline.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
