package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/composer"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/conversations"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/nodes"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/observers"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// maxRunSteps bounds one turn; the graph is acyclic and has seven nodes.
const maxRunSteps = 20

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the full response graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the
// Composer and MessagesManager.
type Config struct {
	Engine           model.EngineConfig
	ConversationRepo model.ConversationRepository
	ComposerOptions  []composer.Option
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	MessagesManager *conversations.MessagesManager
	Composer        *composer.Composer
}

// GraphBuilder handles the construction of the turn-processing graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, string]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, string]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()...))
}

// NewRunner wraps a compiled graph.
func NewRunner(runnable compose.Runnable[model.QueryInput, string]) Runner {
	return &graphRunner{runnable: runnable}
}

// BuildResponseGraph builds the Composer and MessagesManager, compiles the
// graph and returns a Runner together with the manager it records through.
func BuildResponseGraph(ctx context.Context, cfg Config) (Runner, *conversations.MessagesManager, error) {
	if cfg.ConversationRepo == nil {
		return nil, nil, fmt.Errorf("conversation repo is nil")
	}

	c, err := composer.New(cfg.ComposerOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("create composer: %w", err)
	}
	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Engine)

	runnable, err := BuildGraph(ctx, &GraphConfig{MessagesManager: mm, Composer: c})
	if err != nil {
		return nil, nil, err
	}

	logx.Debug().Msg("Response graph built successfully")
	return NewRunner(runnable), mm, nil
}

// BuildGraph constructs and returns the compiled turn-processing graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, string], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Composer == nil {
		return nil, fmt.Errorf("composer is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, string](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	mm := b.config.MessagesManager

	steps := []struct {
		key    string
		lambda *compose.Lambda
		opts   []compose.GraphAddNodeOpt
	}{
		{nodes.NodeTurnRecorder, nodes.NewTurnRecorderNode(mm), []compose.GraphAddNodeOpt{
			compose.WithStatePreHandler(nodes.NewTurnRecorderPreHandler()),
		}},
		{nodes.NodeContextTracker, nodes.NewContextTrackerNode(mm), nil},
		{nodes.NodeAttachmentAnalyzer, nodes.NewAttachmentAnalyzerNode(), []compose.GraphAddNodeOpt{
			compose.WithStatePostHandler(nodes.NewAttachmentAnalyzerPostHandler()),
		}},
		{nodes.NodeIntentClassifier, nodes.NewIntentClassifierNode(), nil},
		{nodes.NodeAttachmentComposer, nodes.NewAttachmentComposerNode(b.config.Composer), nil},
		{nodes.NodeIntentComposer, nodes.NewIntentComposerNode(b.config.Composer), nil},
		{nodes.NodeResponseRecorder, nodes.NewResponseRecorderNode(mm), nil},
	}

	for _, s := range steps {
		opts := append([]compose.GraphAddNodeOpt{compose.WithNodeName(s.key)}, s.opts...)
		if err := b.graph.AddLambdaNode(s.key, s.lambda, opts...); err != nil {
			logx.Error().Err(err).Str("node", s.key).Msg("Error adding node")
			return fmt.Errorf("error adding node %s: %w", s.key, err)
		}
	}
	return nil
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeTurnRecorder},
		{nodes.NodeTurnRecorder, nodes.NodeContextTracker},
		{nodes.NodeContextTracker, nodes.NodeAttachmentAnalyzer},
		{nodes.NodeAttachmentAnalyzer, nodes.NodeIntentClassifier},
		{nodes.NodeAttachmentComposer, nodes.NodeResponseRecorder},
		{nodes.NodeIntentComposer, nodes.NodeResponseRecorder},
		{nodes.NodeResponseRecorder, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			logx.Error().Err(err).Str("from", edge[0]).Str("to", edge[1]).Msg("Error adding edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	composerBranch := compose.NewGraphBranch(
		nodes.NewComposerCondition(),
		map[string]bool{
			nodes.NodeAttachmentComposer: true,
			nodes.NodeIntentComposer:     true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeIntentClassifier, composerBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding composer branch")
		return fmt.Errorf("error adding composer branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, string], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxRunSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
