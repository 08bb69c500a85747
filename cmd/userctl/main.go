package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/celerix-dev/celerix-users/pkg/schema"
	"github.com/celerix-dev/celerix-users/pkg/sdk"
)

func main() {
	fs := pflag.NewFlagSet("userctl", pflag.ExitOnError)
	url := fs.String("url", envOr(sdk.EnvURL, "http://localhost:8080"), "base URL of the user API")
	token := fs.String("token", os.Getenv(sdk.EnvToken), "bearer token (see the login command)")
	timeout := fs.Duration("timeout", 30*time.Second, "per-command timeout")
	fs.Usage = printUsage
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		printUsage()
		return
	}

	client, err := sdk.NewClient(*url, sdk.WithToken(*token))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	command := strings.ToLower(fs.Arg(0))
	args := fs.Args()[1:]

	switch command {
	case "login":
		if len(args) < 1 {
			log.Fatal("Usage: userctl login <email>")
		}
		tok, err := client.Login(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(tok)

	case "list":
		users, err := client.ListUsers(ctx)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(users)

	case "get":
		if len(args) < 1 {
			log.Fatal("Usage: userctl get <id>")
		}
		u, err := client.GetUser(ctx, parseID(args[0]))
		if err != nil {
			log.Fatal(err)
		}
		printJSON(u)

	case "add":
		if len(args) < 1 {
			log.Fatal(`Usage: userctl add '{"firstName":"...","lastName":"...","email":"...","address":"...","age":30,"job":"..."}'`)
		}
		var u schema.User
		if err := json.Unmarshal([]byte(args[0]), &u); err != nil {
			log.Fatalf("invalid user JSON: %v", err)
		}
		created, err := client.AddUser(ctx, u)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(created)

	case "set-job":
		if len(args) < 2 {
			log.Fatal("Usage: userctl set-job <id> <job>")
		}
		if err := client.UpdateJob(ctx, parseID(args[0]), strings.Join(args[1:], " ")); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "delete":
		if len(args) < 1 {
			log.Fatal("Usage: userctl delete <id>")
		}
		removed, err := client.DeleteUser(ctx, parseID(args[0]))
		if err != nil {
			log.Fatal(err)
		}
		printJSON(removed)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}
}

func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid user id %q", s)
	}
	return id
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Println("userctl - command-line client for the user API")
	fmt.Println("\nUsage:")
	fmt.Println("  userctl [--url URL] [--token TOKEN] <command> [args]")
	fmt.Println("\nCommands:")
	fmt.Println("  login <email>        print a bearer token")
	fmt.Println("  list                 list all users")
	fmt.Println("  get <id>             show one user")
	fmt.Println("  add <json>           create a user")
	fmt.Println("  set-job <id> <job>   change a user's job title")
	fmt.Println("  delete <id>          remove a user")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  USERAPI_URL     Base URL of the API (default: http://localhost:8080)")
	fmt.Println("  USERAPI_TOKEN   Bearer token, e.g. export USERAPI_TOKEN=$(userctl login you@firma.de)")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
