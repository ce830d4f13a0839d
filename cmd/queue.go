package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/store"
	"github.com/abhisek/quizmind/internal/studyqueue"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage your study queue",
}

var queueShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List queued topics, front first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		q, err := s.QueueRepo().Load(cmd.Context(), resolveLearner(cmd))
		if err != nil {
			return fmt.Errorf("load queue: %w", err)
		}
		printQueue(cmd, q)
		return nil
	},
}

var queueAddCmd = &cobra.Command{
	Use:   "add <topic>",
	Short: "Add a topic to the back of the queue",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueueOp(cmd, studyqueue.OpEnqueue, strings.Join(args, " "))
	},
}

var queueNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Take the topic at the front of the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueueOp(cmd, studyqueue.OpDequeue, "")
	},
}

var queueRemoveCmd = &cobra.Command{
	Use:   "remove <topic>",
	Short: "Remove the first occurrence of a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueueOp(cmd, studyqueue.OpRemove, strings.Join(args, " "))
	},
}

// errTopicRequired is returned by queue add and remove for a blank topic.
var errTopicRequired = errors.New("topic is required")

func runQueueOp(cmd *cobra.Command, op studyqueue.Operation, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" && op != studyqueue.OpDequeue {
		return errTopicRequired
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	before, after, err := applyQueueOp(cmd.Context(), s.QueueRepo(), resolveLearner(cmd), op, topic)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case op == studyqueue.OpDequeue && len(before) > 0:
		lipgloss.Fprintln(w, theme.Label.Render("Next topic: ")+theme.Highlight.Render(before[0]))
	case op == studyqueue.OpEnqueue && len(after) == len(before):
		lipgloss.Fprintln(w, theme.Fair.Render(fmt.Sprintf("Queue is full (%d topics); nothing added.", studyqueue.Capacity)))
	case op == studyqueue.OpRemove && len(after) == len(before):
		lipgloss.Fprintln(w, theme.Muted.Render(fmt.Sprintf("%q is not in the queue.", topic)))
	}
	printQueue(cmd, after)
	return nil
}

// applyQueueOp loads the learner's queue, applies op and saves the result
// when it changed. It returns the queue before and after.
func applyQueueOp(ctx context.Context, repo store.QueueRepo, learner string, op studyqueue.Operation, topic string) (before, after []string, err error) {
	before, err = repo.Load(ctx, learner)
	if err != nil {
		return nil, nil, fmt.Errorf("load queue: %w", err)
	}
	after = studyqueue.Apply(before, op, topic)
	if len(after) == len(before) {
		return before, after, nil
	}
	if err := repo.Save(ctx, learner, after); err != nil {
		return nil, nil, fmt.Errorf("save queue: %w", err)
	}
	return before, after, nil
}

func printQueue(cmd *cobra.Command, q []string) {
	w := cmd.OutOrStdout()
	if len(q) == 0 {
		lipgloss.Fprintln(w, theme.Muted.Render("Study queue is empty."))
		return
	}
	rows := make([][]string, len(q))
	for i, topic := range q {
		rows[i] = []string{fmt.Sprintf("%d", i+1), topic}
	}
	lipgloss.Fprintln(w, theme.Table([]string{"#", "Topic"}, rows))
}

func init() {
	queueCmd.AddCommand(queueShowCmd)
	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueNextCmd)
	queueCmd.AddCommand(queueRemoveCmd)
}
