package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/outbox"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/spf13/cobra"
)

var (
	conversationsLimit int
	historyLimit       int
	searchLimit        int
	outboxLimit        int
	failedFlag         bool
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List configured and previously opened conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversations,
}

var historyCmd = &cobra.Command{
	Use:   "history <channel> [key]",
	Short: "Print the cached transcript of a conversation without fetching",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runHistory,
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search cached messages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Show the send log",
	Args:  cobra.NoArgs,
	RunE:  runOutbox,
}

func init() {
	conversationsCmd.Flags().IntVar(&conversationsLimit, "limit", 100, "maximum number of rows")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 200, "maximum number of messages")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "maximum number of results")
	outboxCmd.Flags().IntVar(&outboxLimit, "limit", 50, "maximum number of entries")
	outboxCmd.Flags().BoolVar(&failedFlag, "failed", false, "only failed sends")
	rootCmd.AddCommand(conversationsCmd, historyCmd, searchCmd, outboxCmd)
}

func runConversations(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	db, err := e.store()
	if err != nil {
		return err
	}
	rec := intsync.NewReconciler(db, e.logger)
	if _, err := rec.Seed(e.settings.Surface, e.settings.Profile.Conversations); err != nil {
		return err
	}
	known, err := rec.Known(e.settings.Surface, conversationsLimit)
	if err != nil {
		return err
	}

	if jsonFlag {
		return outputJSON(known)
	}
	if len(known) == 0 {
		fmt.Println("No conversations. Add some to the profile or open one with hirechat.")
		return nil
	}
	w := newTable(os.Stdout)
	_, _ = fmt.Fprintln(w, "CHANNEL\tKEY\tTITLE\tMSGS\tLAST AT")
	for _, k := range known {
		last := ""
		if k.Summary.LastMessageAt != "" {
			last = chat.FormatTime(k.Summary.LastMessageAt)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			k.Conversation.Channel, k.Conversation.Key, k.Title(), k.Summary.MessageCount, last)
	}
	return w.Flush()
}

func runHistory(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	route, _, err := e.route(args)
	if err != nil {
		return err
	}
	db, err := e.store()
	if err != nil {
		return err
	}
	rows, err := db.ListMessages(intsync.RefOf(route.Surface, route.Conversation), historyLimit)
	if err != nil {
		return err
	}
	msgs := intsync.MessagesOf(rows)

	if jsonFlag {
		return outputJSON(msgs)
	}
	if len(msgs) == 0 {
		fmt.Println("Nothing cached for this conversation yet.")
		return nil
	}
	t, _ := chat.NewRenderer(route).Render(msgs)
	printTranscript(os.Stdout, t)
	return nil
}

func runSearch(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	db, err := e.store()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	results, err := db.SearchMessages(string(e.settings.Surface), query, searchLimit)
	if err != nil {
		return err
	}

	if jsonFlag {
		return outputJSON(results)
	}
	if len(results) == 0 {
		fmt.Printf("No cached messages match %q.\n", query)
		return nil
	}
	w := newTable(os.Stdout)
	_, _ = fmt.Fprintln(w, "CONVERSATION\tFROM\tAT\tSNIPPET")
	for _, r := range results {
		m := r.Message
		conv := chat.Conversation{Channel: chat.ChannelType(m.Channel), Key: m.Key}
		from := m.SenderName
		if m.SenderRole == e.settings.Surface.ViewerRole() {
			from = "You"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", conv, from, chat.FormatTime(m.CreatedAt), r.Snippet)
	}
	return w.Flush()
}

func runOutbox(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	db, err := e.store()
	if err != nil {
		return err
	}
	log := outbox.NewLog(db, e.logger)
	list := log.All
	if failedFlag {
		list = log.Failures
	}
	entries, err := list(outboxLimit)
	if err != nil {
		return err
	}

	if jsonFlag {
		return outputJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No sends recorded.")
		return nil
	}
	w := newTable(os.Stdout)
	_, _ = fmt.Fprintln(w, "ID\tCONVERSATION\tSTATUS\tAT\tMESSAGE\tERROR")
	for _, o := range entries {
		conv := chat.Conversation{Channel: chat.ChannelType(o.Channel), Key: o.Key}
		at := time.UnixMilli(o.CreatedAt).Format("Jan 2 15:04")
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(o.ClientMsgID), conv, o.Status, at, preview(o.Body), o.ErrorMessage)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return s
}
