// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package predictor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// Feature names the regression model was trained on.
const (
	FeatureCNormalized = "C_normalized"
	FeatureTypeWeight  = "Type_Weight"
)

// Artifact kinds.
const (
	KindXGBoost = "xgboost"
	KindLinear  = "linear"
)

// ErrInvalidArtifact marks a model file that cannot be evaluated.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Model is the pretrained regression function. Implementations must be safe
// for concurrent use and must not retain their arguments.
type Model interface {
	Predict(cNormalized, typeWeight float64) (float64, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(cNormalized, typeWeight float64) (float64, error)

// Predict implements Model.
func (f ModelFunc) Predict(cNormalized, typeWeight float64) (float64, error) {
	return f(cNormalized, typeWeight)
}

// LinearModel is intercept + a*C_normalized + b*Type_Weight.
type LinearModel struct {
	Intercept   float64
	CNormalized float64
	TypeWeight  float64
}

// Predict implements Model.
func (m *LinearModel) Predict(cNormalized, typeWeight float64) (float64, error) {
	return m.Intercept + m.CNormalized*cNormalized + m.TypeWeight*typeWeight, nil
}

// TreeNode is one node of an XGBoost JSON tree dump.
type TreeNode struct {
	NodeID         int        `json:"nodeid"`
	Split          string     `json:"split,omitempty"`
	SplitCondition float64    `json:"split_condition,omitempty"`
	Yes            int        `json:"yes,omitempty"`
	No             int        `json:"no,omitempty"`
	Missing        int        `json:"missing,omitempty"`
	Leaf           *float64   `json:"leaf,omitempty"`
	Children       []TreeNode `json:"children,omitempty"`
}

// TreeEnsemble evaluates an XGBoost regression dump: base_score plus the sum
// of one leaf per tree.
type TreeEnsemble struct {
	BaseScore float64
	trees     []compiledTree
}

type compiledTree struct {
	nodes map[int]*TreeNode
}

// Predict implements Model.
func (m *TreeEnsemble) Predict(cNormalized, typeWeight float64) (float64, error) {
	sum := m.BaseScore
	for i := range m.trees {
		v, err := m.trees[i].eval(cNormalized, typeWeight)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return sum, nil
}

func (t *compiledTree) eval(cNormalized, typeWeight float64) (float64, error) {
	node, ok := t.nodes[0]
	if !ok {
		return 0, fmt.Errorf("%w: tree has no root", ErrInvalidArtifact)
	}
	// A well-formed tree cannot be deeper than its node count.
	for steps := 0; steps <= len(t.nodes); steps++ {
		if node.Leaf != nil {
			return *node.Leaf, nil
		}
		x, err := featureValue(node.Split, cNormalized, typeWeight)
		if err != nil {
			return 0, err
		}
		next := node.No
		switch {
		case math.IsNaN(x):
			next = node.Missing
		case x < node.SplitCondition:
			next = node.Yes
		}
		if node, ok = t.nodes[next]; !ok {
			return 0, fmt.Errorf("%w: dangling node %d", ErrInvalidArtifact, next)
		}
	}
	return 0, fmt.Errorf("%w: cycle in tree", ErrInvalidArtifact)
}

func featureValue(name string, cNormalized, typeWeight float64) (float64, error) {
	switch name {
	case FeatureCNormalized, "f0":
		return cNormalized, nil
	case FeatureTypeWeight, "f1":
		return typeWeight, nil
	default:
		return 0, fmt.Errorf("%w: unknown feature %q", ErrInvalidArtifact, name)
	}
}

func index(root *TreeNode, nodes map[int]*TreeNode) {
	nodes[root.NodeID] = root
	for i := range root.Children {
		index(&root.Children[i], nodes)
	}
}

// artifact is the on-disk model document.
type artifact struct {
	Kind         string             `json:"kind"`
	BaseScore    float64            `json:"base_score"`
	FeatureNames []string           `json:"feature_names"`
	Trees        []TreeNode         `json:"trees"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// ParseArtifact decodes a model document. Tree dumps are the default kind.
func ParseArtifact(data []byte) (Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	switch strings.ToLower(a.Kind) {
	case KindLinear:
		for name := range a.Coefficients {
			if name != FeatureCNormalized && name != FeatureTypeWeight {
				return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidArtifact, name)
			}
		}
		return &LinearModel{
			Intercept:   a.Intercept,
			CNormalized: a.Coefficients[FeatureCNormalized],
			TypeWeight:  a.Coefficients[FeatureTypeWeight],
		}, nil

	case "", KindXGBoost:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%w: no trees", ErrInvalidArtifact)
		}
		for _, f := range a.FeatureNames {
			if f != FeatureCNormalized && f != FeatureTypeWeight {
				return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidArtifact, f)
			}
		}
		m := &TreeEnsemble{BaseScore: a.BaseScore, trees: make([]compiledTree, len(a.Trees))}
		for i := range a.Trees {
			nodes := make(map[int]*TreeNode)
			index(&a.Trees[i], nodes)
			m.trees[i] = compiledTree{nodes: nodes}
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidArtifact, a.Kind)
	}
}

// LoadArtifact reads and parses a model file.
func LoadArtifact(path string) (Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return m, nil
}
