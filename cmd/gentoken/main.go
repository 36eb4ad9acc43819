// Dev utility to generate JWT tokens for manual API testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	role := flag.String("role", "admin", "role to embed (admin, coordinator, student)")
	subject := flag.String("sub", auth.EnvAdminID, "subject id (24-char hex for a stored user)")
	email := flag.String("email", "dev@campushub.local", "email to embed")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is not set")
		os.Exit(1)
	}

	issuer := auth.NewTokenIssuer(secret, *expiry, os.Getenv("JWT_ISSUER"))
	token, expiresAt, err := issuer.Issue(auth.Identity{
		ID:    *subject,
		Email: *email,
		Role:  string(auth.NormalizeRole(*role)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Printf("\nExpires: %s\n", expiresAt.Format(time.RFC3339))
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/v1/auth/me\n", token)
}
