package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/engine"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

var attachPaths []string

var askCmd = &cobra.Command{
	Use:   "ask [utterance...]",
	Short: "Send one message and print the reply",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation. Besides plain messages the prompt accepts:

  /attach <path>   queue a file for the next message
  /clear           reset history and context
  /context         show the tracked conversation context
  /history         show the conversation history
  /quit            leave`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	askCmd.Flags().StringSliceVarP(&attachPaths, "attach", "a", nil, "file to attach (repeatable)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	atts := make([]model.Attachment, 0, len(attachPaths))
	for _, p := range attachPaths {
		att, err := loadAttachment(p)
		if err != nil {
			return err
		}
		atts = append(atts, att)
	}

	utterance := strings.Join(args, " ")
	if strings.TrimSpace(utterance) == "" && len(atts) == 0 {
		return fmt.Errorf("nothing to send: give an utterance or --attach a file")
	}

	fmt.Fprintln(cmd.OutOrStdout(), e.ProcessMessage(ctx, utterance, atts))
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Conversation %s. Type /quit to leave.\n", e.ConversationID())
	return chatLoop(ctx, e, cmd.InOrStdin(), out)
}

func chatLoop(ctx context.Context, e *engine.Engine, in io.Reader, out io.Writer) error {
	var pending []model.Attachment
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		cmdName, arg, _ := strings.Cut(line, " ")
		switch cmdName {
		case "/quit", "/exit":
			return nil
		case "/attach":
			att, err := loadAttachment(strings.TrimSpace(arg))
			if err != nil {
				fmt.Fprintln(out, "cannot attach:", err)
				continue
			}
			pending = append(pending, att)
			fmt.Fprintf(out, "attached %s (%s, %s)\n", att.Name, att.Category.Label(), humanize.Bytes(uint64(att.Size)))
		case "/clear":
			if err := e.ClearHistory(ctx); err != nil {
				fmt.Fprintln(out, "cannot clear:", err)
				continue
			}
			pending = nil
			fmt.Fprintln(out, "history cleared")
		case "/context":
			c, err := e.GetContext(ctx)
			if err != nil {
				fmt.Fprintln(out, "cannot load context:", err)
				continue
			}
			printContext(out, c)
		case "/history":
			turns, err := e.GetHistory(ctx)
			if err != nil {
				fmt.Fprintln(out, "cannot load history:", err)
				continue
			}
			printHistory(out, turns)
		default:
			if line == "" && len(pending) == 0 {
				continue
			}
			fmt.Fprintln(out, e.ProcessMessage(ctx, line, pending))
			pending = nil
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// contextView is the YAML shape printed by /context.
type contextView struct {
	Topics     []string `yaml:"topics"`
	Tone       string   `yaml:"tone"`
	Questions  []string `yaml:"previous_questions"`
	Categories []string `yaml:"attachment_categories_seen"`
}

func printContext(out io.Writer, c model.ConversationContext) {
	view := contextView{
		Topics:    c.Topics,
		Tone:      string(c.Tone),
		Questions: c.PreviousQuestions,
	}
	for _, cat := range c.Categories() {
		view.Categories = append(view.Categories, string(cat))
	}
	b, err := yaml.Marshal(view)
	if err != nil {
		fmt.Fprintln(out, "cannot render context:", err)
		return
	}
	fmt.Fprint(out, string(b))
}

func printHistory(out io.Writer, turns []model.Turn) {
	for _, t := range turns {
		content := t.Content
		if len(t.Attachments) > 0 {
			names := make([]string, 0, len(t.Attachments))
			for _, a := range t.Attachments {
				names = append(names, a.Name)
			}
			content += fmt.Sprintf(" [attachments: %s]", strings.Join(names, ", "))
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", humanize.Time(t.CreatedAt), t.Role, content)
	}
}
