package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/app"
	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/service"
)

const usage = `usage: sharelinks <command> [args]

commands:
  login              complete the authorization flow and cache the token
  logout             drop the cached token
  resolve <trackID>  resolve a Spotify track into a shareable link
  recent [n]         list previously resolved links (default 10)

During authorization, open the printed URL in a browser, approve access,
then paste the address the browser lands on into this terminal.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := app.LoadConfig()

	// The redirect side channel is this terminal: a background reader keeps
	// the most recent stdin line available for polling.
	var lastLine atomic.Value
	lastLine.Store("")
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lastLine.Store(scanner.Text())
		}
	}()

	source := service.TextSourceFunc(func() (string, error) {
		return lastLine.Load().(string), nil
	})
	authorize := service.AuthorizeFunc(func(authorizeURL string) {
		fmt.Printf("Open this URL in a browser and approve access:\n\n  %s\n\nThen paste the address the browser redirects to:\n", authorizeURL)
	})

	application, err := app.New(cfg, source, authorize)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		cred, err := application.Login(ctx)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		fmt.Printf("Authorized. Token valid until %s.\n", cred.ExpiresAt().Format("15:04:05 MST"))

	case "logout":
		if err := application.Logout(ctx); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("Cached token removed.")

	case "resolve":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		record, err := application.Resolve(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("resolve failed: %v", err)
		}
		fmt.Printf("%s\n%s\n%s\n", record.Title, record.Subtitle, record.TargetURL)

	case "recent":
		limit := 10
		if len(os.Args) > 2 {
			fmt.Sscanf(os.Args[2], "%d", &limit)
		}
		records, err := application.Recent(ctx, limit)
		if err != nil {
			log.Fatalf("failed to list links: %v", err)
		}
		for _, record := range records {
			fmt.Printf("%s  %-30s %-20s %s\n",
				record.CreatedAt.Local().Format("2006-01-02 15:04"),
				record.Title, record.Subtitle, record.TargetURL)
		}

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
