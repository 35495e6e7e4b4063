package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/joho/godotenv"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/config"
)

const usage = `Soundzy Site Admin CLI

A lightweight ops tool that only requires database access. It talks to the
same store as the server, so it works whether or not the server is running.

USAGE:
  admin <command> [options]

COMMANDS:
  token     Issue an admin JWT for the console API
  leads     List captured leads
  sessions  List chat sessions
  stats     Print the dashboard stats

ENVIRONMENT VARIABLES:
  DATABASE_URL      PostgreSQL connection string, or "memory" (default: memory)
  DB_SCHEMA         PostgreSQL schema name (default: site)
  JWT_SECRET        HMAC secret, required for the token command

  Configuration can be loaded from a .env file in the current directory.
  Command line environment variables override .env file values.

EXAMPLES:
  # Issue a console token valid for a day
  admin token --sub=ops --ttl=24h

  # List leads as a table or as JSON
  admin leads
  admin leads --json

  # List active sessions matching a visitor search
  admin sessions --status=active --search=whatsapp --limit=20

  # Print dashboard stats
  admin stats --json

OPTIONS:
  --sub=<subject>     Token subject (token only, default: admin)
  --ttl=<duration>    Token lifetime (token only, default: 24h)
  --status=<status>   Filter sessions by status
  --search=<text>     Filter sessions by session id substring
  --limit=<n>         Maximum results (sessions only, default: 50)
  --offset=<n>        Pagination offset (sessions only, default: 0)
  --json              Output as JSON`

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "--help" || command == "-h" {
		fmt.Println(usage)
		os.Exit(0)
	}

	flags := parseFlags(os.Args[2:])
	ctx := context.Background()

	// The token command needs no store at all.
	if command == "token" {
		handleToken(flags)
		return
	}

	svc, err := createService()
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	switch command {
	case "leads":
		handleLeads(ctx, svc, flags)
	case "sessions":
		handleSessions(ctx, svc, flags)
	case "stats":
		handleStats(ctx, svc, flags)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func createService() (sitecontent.Service, error) {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		return nil, err
	}
	return cfg.BuildService(nil)
}

type cliFlags struct {
	sub     string
	ttl     time.Duration
	status  string
	search  string
	limit   int
	offset  int
	useJSON bool
}

func parseFlags(args []string) cliFlags {
	flags := cliFlags{sub: "admin", ttl: 24 * time.Hour, limit: 50}

	for _, arg := range args {
		if arg == "--json" {
			flags.useJSON = true
			continue
		}
		key, value := parseFlag(arg)
		switch key {
		case "sub":
			flags.sub = value
		case "ttl":
			if d, err := time.ParseDuration(value); err == nil {
				flags.ttl = d
			}
		case "status":
			flags.status = value
		case "search":
			flags.search = value
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				flags.limit = n
			}
		case "offset":
			if n, err := strconv.Atoi(value); err == nil {
				flags.offset = n
			}
		}
	}
	return flags
}

func parseFlag(arg string) (string, string) {
	if len(arg) > 2 && arg[:2] == "--" {
		arg = arg[2:]
		for i, c := range arg {
			if c == '=' {
				return arg[:i], arg[i+1:]
			}
		}
		return arg, "true"
	}
	return "", ""
}

func handleToken(flags cliFlags) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is required for the token command")
	}

	now := time.Now()
	ja := jwtauth.New("HS256", []byte(secret), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"sub": flags.sub,
		"iat": now.Unix(),
		"exp": now.Add(flags.ttl).Unix(),
	})
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(tokenString)
}

func handleLeads(ctx context.Context, svc sitecontent.Service, flags cliFlags) {
	leads, err := svc.ListLeads(ctx)
	if err != nil {
		log.Fatalf("Failed to list leads: %v", err)
	}

	if flags.useJSON {
		data, _ := json.MarshalIndent(leads, "", "  ")
		fmt.Println(string(data))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tEMAIL\tSERVICE\tSTATUS\tPRIORITY\tCREATED\n")
	for _, lead := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lead.ID.String()[:8]+"...",
			truncate(lead.Name, 20),
			truncate(lead.Email, 30),
			truncate(lead.ServiceType, 15),
			lead.Status,
			lead.Priority,
			lead.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(leads))
}

func handleSessions(ctx context.Context, svc sitecontent.Service, flags cliFlags) {
	filters := sitecontent.SessionFilters{
		Search: flags.search,
		Limit:  &flags.limit,
		Offset: &flags.offset,
	}
	if flags.status != "" {
		filters.Status = &flags.status
	}

	sessions, err := svc.ListSessions(ctx, filters)
	if err != nil {
		log.Fatalf("Failed to list sessions: %v", err)
	}

	if flags.useJSON {
		data, _ := json.MarshalIndent(sessions, "", "  ")
		fmt.Println(string(data))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SESSION\tSTATUS\tMESSAGES\tLAST ACTIVITY\n")
	for _, session := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			session.SessionID,
			session.Status,
			session.MessageCount,
			session.LastActivity.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(sessions))
}

func handleStats(ctx context.Context, svc sitecontent.Service, flags cliFlags) {
	stats, err := svc.GetDashboardStats(ctx)
	if err != nil {
		log.Fatalf("Failed to get stats: %v", err)
	}

	if flags.useJSON {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("=== Dashboard ===")
	fmt.Printf("Active chats:     %d\n", stats.ActiveChats)
	fmt.Printf("New leads today:  %d\n", stats.NewLeadsToday)
	fmt.Printf("Orders today:     %d\n", stats.OrdersToday)
	fmt.Printf("Revenue today:    %s\n", sitecontent.FormatPrice(stats.RevenueTodayCents))
	fmt.Printf("Low stock items:  %d\n", stats.LowStockProducts)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
