// Command authctl signs in to the auth API from a terminal and keeps the
// session in a file between runs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"rideauth/internal/client"
)

func main() {
	log.SetFlags(0)

	home, _ := os.UserHomeDir()
	fs := flag.NewFlagSet("authctl", flag.ExitOnError)
	baseURL := fs.String("url", envOr("AUTH_API_URL", "http://localhost:5000"), "API base URL")
	sessionPath := fs.String("session", filepath.Join(home, ".config", "rideauth", "session.json"), "session file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: authctl [flags] signup|signin|profile|whoami|logout [args]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	session, err := client.NewSession(client.FileStore{Path: *sessionPath})
	if err != nil {
		log.Fatal(err)
	}
	c := client.New(*baseURL, session, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	args := fs.Args()[1:]
	switch fs.Arg(0) {
	case "signup":
		sub := flag.NewFlagSet("signup", flag.ExitOnError)
		in := client.SignupInput{}
		sub.StringVar(&in.Email, "email", "", "email")
		sub.StringVar(&in.Password, "password", "", "password")
		sub.StringVar(&in.FirstName, "first-name", "", "first name")
		sub.StringVar(&in.LastName, "last-name", "", "last name")
		sub.StringVar(&in.Phone, "phone", "", "10 digit phone")
		sub.StringVar(&in.Role, "role", "", "rider or driver")
		_ = sub.Parse(args)
		printUser(c.Signup(ctx, in))
	case "signin":
		sub := flag.NewFlagSet("signin", flag.ExitOnError)
		email := sub.String("email", "", "email")
		password := sub.String("password", "", "password")
		_ = sub.Parse(args)
		printUser(c.Signin(ctx, *email, *password))
	case "profile":
		printUser(c.Profile(ctx))
	case "whoami":
		printUser(session.User(), nil)
	case "logout":
		if err := c.Logout(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("signed out")
	default:
		fs.Usage()
		os.Exit(2)
	}
}

func printUser(user *client.User, err error) {
	if err != nil {
		log.Fatal(err)
	}
	if user == nil {
		fmt.Println("not signed in")
		return
	}
	out, _ := json.MarshalIndent(user, "", "  ")
	fmt.Println(string(out))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
