// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"backchannel/client"
	"backchannel/localmem"
	"backchannel/models"
	"backchannel/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	server := os.Getenv("BACKCHANNEL_SERVER")
	if server == "" {
		server = "http://localhost:8711"
	}

	memPath := os.Getenv("BACKCHANNEL_MEMORY")
	if memPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("cannot determine config dir: %w", err)
		}
		memPath = filepath.Join(configDir, "backchannel")
	}

	mem, err := localmem.Open(memPath)
	if err != nil {
		return err
	}
	defer mem.Close()

	api := client.New(server)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "create":
		return createGroup(ctx, api, mem, rest)
	case "recent":
		return listRecent(mem)
	case "board":
		return showBoard(ctx, api, mem, rest)
	case "ask":
		return askQuestion(ctx, api, rest)
	case "respond":
		return addResponse(ctx, api, rest)
	case "upvote":
		return toggleVote(ctx, api, mem, models.KindUpvote, rest)
	case "flag":
		return toggleVote(ctx, api, mem, models.KindFlag, rest)
	case "watch":
		return watchGroup(ctx, api, mem, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: backchannel <command> [args]

  create  <name>                               create a group
  recent                                       list recently visited groups
  board   <group>                              show a group's questions
  ask     <group> <text>                       ask a question
  respond <group> <question> <text>            respond to a question
  upvote  <group> <question> [response]        toggle your upvote
  flag    <group> <question> [response]        toggle your flag
  watch   <group>                              follow a group live

Environment: BACKCHANNEL_SERVER (default http://localhost:8711),
BACKCHANNEL_MEMORY (local state directory).`)
}

func createGroup(ctx context.Context, api *client.Client, mem *localmem.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: create <name>")
	}

	groupID, err := api.CreateGroup(ctx, args[0])
	if err != nil {
		return err
	}

	// Visiting records it on the recent list right away
	if _, err := session.New(api, mem, groupID).Visit(ctx); err != nil {
		return err
	}

	fmt.Println("created group", groupID)
	return nil
}

func listRecent(mem *localmem.Store) error {
	groups, err := mem.RecentGroups()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("no groups visited yet")
		return nil
	}

	// Stored oldest-first; show the latest visit on top
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		fmt.Printf("%-14s %-24s visited %s\n",
			group.ID, group.Name, humanize.Time(group.LastVisited))
	}
	return nil
}

func showBoard(ctx context.Context, api *client.Client, mem *localmem.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: board <group>")
	}

	sess := session.New(api, mem, args[0])
	group, err := sess.Visit(ctx)
	if err != nil {
		return err
	}

	board, err := sess.Board(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s (created %s)\n", group.Name, humanize.Time(group.CreatedDate))
	printBoard(sess, board)
	return nil
}

func printBoard(sess *session.Session, board session.Board) {
	if len(board.Fresh) > 0 {
		fmt.Println("\n-- new --")
		for _, question := range board.Fresh {
			printQuestion(sess, question)
		}
	}
	if len(board.Stale) > 0 {
		fmt.Println("\n-- earlier --")
		for _, question := range board.Stale {
			printQuestion(sess, question)
		}
	}
}

func printQuestion(sess *session.Session, question models.Question) {
	marker := " "
	if voted, err := sess.HasUpvotedQuestion(question.ID); err == nil && voted {
		marker = "*"
	}
	fmt.Printf("%s [%s] ▲%d ⚑%d  %s  (%s)\n", marker, question.ID,
		question.Upvotes, question.Flags, question.Text, humanize.Time(question.Datetime))
	for _, response := range question.Responses {
		fmt.Printf("      ↳ ▲%d ⚑%d  %s\n", response.Upvotes, response.Flags, response.Text)
	}
}

func askQuestion(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ask <group> <text>")
	}

	questionID, err := api.AskQuestion(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println("asked question", questionID)
	return nil
}

func addResponse(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: respond <group> <question> <text>")
	}

	response, err := api.AddResponse(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Println("added response", response.ID)
	return nil
}

func toggleVote(ctx context.Context, api *client.Client, mem *localmem.Store, kind string, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("usage: %s <group> <question> [response]", kind)
	}

	sess := session.New(api, mem, args[0])
	questionID := args[1]

	var err error
	switch {
	case len(args) == 2 && kind == models.KindUpvote:
		err = sess.ToggleQuestionUpvote(ctx, questionID)
	case len(args) == 2:
		err = sess.ToggleQuestionFlag(ctx, questionID)
	case kind == models.KindUpvote:
		err = sess.ToggleResponseUpvote(ctx, questionID, args[2])
	default:
		err = sess.ToggleResponseFlag(ctx, questionID, args[2])
	}
	if err != nil {
		return err
	}

	fmt.Println("toggled", kind)
	return nil
}

func watchGroup(ctx context.Context, api *client.Client, mem *localmem.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: watch <group>")
	}

	sess := session.New(api, mem, args[0])
	group, err := sess.Visit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("watching %s (Ctrl-C to stop)\n", group.Name)

	err = sess.WatchBoard(ctx, func(board session.Board) {
		fmt.Print("\033[H\033[2J") // clear screen between frames
		fmt.Printf("%s (live)\n", group.Name)
		printBoard(sess, board)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
