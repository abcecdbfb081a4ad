package learning

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/palette/internal/assets"
	"github.com/JaimeStill/palette/internal/captions"
)

// State keys shared by the learning graph nodes.
const (
	KeyRequest  = "request"
	KeyCaptions = "captions"
	KeyAssets   = "assets"
	KeyClusters = "clusters"
	KeyResult   = "result"
)

// execute runs load → cluster → templates → profiles → finalize. When nothing
// is approved, load jumps straight to finalize.
func (l *Learner) execute(ctx context.Context, req Request) (*Result, error) {
	graph, err := l.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyRequest, req)
	initial = initial.Set(KeyResult, newResult())

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, err
	}

	return stateValue[*Result](final, KeyResult)
}

func (l *Learner) buildGraph() (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("palette-learn")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"load", l.loadNode()},
		{"cluster", l.clusterNode()},
		{"templates", l.templatesNode()},
		{"profiles", l.profilesNode()},
		{"finalize", l.finalizeNode()},
	}
	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	if err := graph.AddEdge("load", "cluster", hasContent); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("load", "finalize", state.Not(hasContent)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("cluster", "templates", nil); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("templates", "profiles", nil); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("profiles", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("load"); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func (l *Learner) loadNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := stateValue[Request](s, KeyRequest)
		if err != nil {
			return s, fmt.Errorf("load: %w", err)
		}

		approvedCaptions, err := l.loadCaptions(ctx, req)
		if err != nil {
			return s, fmt.Errorf("load captions: %w", err)
		}

		approvedAssets, err := l.loadAssets(ctx, req)
		if err != nil {
			return s, fmt.Errorf("load assets: %w", err)
		}

		l.logger.InfoContext(ctx, "approved content loaded",
			"workspace_id", req.WorkspaceID,
			"captions", len(approvedCaptions),
			"assets", len(approvedAssets),
		)

		s = s.Set(KeyCaptions, approvedCaptions)
		s = s.Set(KeyAssets, approvedAssets)
		return s, nil
	})
}

func (l *Learner) clusterNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		approved, err := stateValue[[]captions.Caption](s, KeyCaptions)
		if err != nil {
			return s, fmt.Errorf("cluster: %w", err)
		}

		clusters := Cluster(approved, l.similarity)
		l.logger.DebugContext(ctx, "captions clustered",
			"captions", len(approved),
			"clusters", len(clusters),
		)

		return s.Set(KeyClusters, clusters), nil
	})
}

func (l *Learner) templatesNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := stateValue[Request](s, KeyRequest)
		if err != nil {
			return s, fmt.Errorf("templates: %w", err)
		}
		clusters, err := stateValue[[][]captions.Caption](s, KeyClusters)
		if err != nil {
			return s, fmt.Errorf("templates: %w", err)
		}
		res, err := stateValue[*Result](s, KeyResult)
		if err != nil {
			return s, fmt.Errorf("templates: %w", err)
		}

		if err := l.persistTemplates(ctx, req, clusters, res); err != nil {
			return s, fmt.Errorf("templates: %w", err)
		}
		return s, nil
	})
}

func (l *Learner) profilesNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := stateValue[Request](s, KeyRequest)
		if err != nil {
			return s, fmt.Errorf("profiles: %w", err)
		}
		approved, err := stateValue[[]assets.GeneratedAsset](s, KeyAssets)
		if err != nil {
			return s, fmt.Errorf("profiles: %w", err)
		}
		res, err := stateValue[*Result](s, KeyResult)
		if err != nil {
			return s, fmt.Errorf("profiles: %w", err)
		}

		if err := l.persistProfiles(ctx, req, approved, res); err != nil {
			return s, fmt.Errorf("profiles: %w", err)
		}
		return s, nil
	})
}

func (l *Learner) finalizeNode() state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		res, err := stateValue[*Result](s, KeyResult)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		if !hasContent(s) {
			res.Insights = []string{NoContentInsight}
			return s, nil
		}
		if len(res.Templates) == 0 && len(res.StyleProfiles) == 0 {
			res.Insights = append(res.Insights, "Approved content was found, but no recurring caption patterns were strong enough to form a template.")
		}
		return s, nil
	})
}

func hasContent(s state.State) bool {
	c, _ := stateValue[[]captions.Caption](s, KeyCaptions)
	a, _ := stateValue[[]assets.GeneratedAsset](s, KeyAssets)
	return len(c) > 0 || len(a) > 0
}

func stateValue[T any](s state.State, key string) (T, error) {
	var zero T

	val, ok := s.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing %s in state", key)
	}

	v, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%s is not %T", key, zero)
	}
	return v, nil
}
