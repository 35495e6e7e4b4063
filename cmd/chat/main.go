package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/soundzyworld/site-backend/pkg/chatclient"
)

// An interactive shell for the site's chat widget endpoint. Useful for
// exercising the assistant without a browser: point it at a running server
// and type messages.
func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	endpoint := os.Getenv("CHAT_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080/api/v1/chat"
	}
	if len(os.Args) > 1 {
		endpoint = os.Args[1]
	}

	client := chatclient.New(endpoint)
	sessionID := chatclient.NewSessionID()
	ctx := context.Background()

	fmt.Println("=== Soundzy Chat Shell ===")
	fmt.Printf("Endpoint: %s\n", endpoint)
	fmt.Printf("Session:  %s\n", sessionID)
	fmt.Println("Type a message, 'new' for a fresh session, 'exit' to quit")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("you> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch input {
		case "exit", "quit", "q":
			fmt.Println("Goodbye!")
			return
		case "new":
			sessionID = chatclient.NewSessionID()
			fmt.Printf("Session:  %s\n", sessionID)
			continue
		}

		reply := client.SendMessage(ctx, sessionID, input)
		fmt.Printf("bot> %s\n", reply.Response)
		if len(reply.QuickReplies) > 0 {
			fmt.Printf("     [%s]\n", strings.Join(reply.QuickReplies, " | "))
		}
		fmt.Printf("     (intent: %s, confidence: %.1f)\n\n", reply.Intent, reply.Confidence)
	}
}
