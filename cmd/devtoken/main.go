// Command devtoken mints an access token signed with JWT_SECRET_KEY for local testing.
//
//	go run ./cmd/devtoken -user u-1 -employee emp-1
//	go run ./cmd/devtoken -user admin-1 -admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id (required)")
	employeeID := flag.String("employee", "", "employee id linked to the user")
	isAdmin := flag.Bool("admin", false, "grant admin privilege")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	claims := auth.Claims{UserID: *userID, IsAdmin: *isAdmin}
	if *employeeID != "" {
		claims.EmployeeID = employeeID
	}

	token, exp, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(claims)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at unix", exp)
}
