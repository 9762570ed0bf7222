// Package normalizer rewrites a JSON value tree into a canonical order:
// object keys ascending, arrays of strings or numbers ascending by value, and
// arrays of objects ordered by a composite key built from their scalar fields.
//
// Every operation returns new values; inputs are never modified.
package normalizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcncl/jsonorder/internal/config"
	"github.com/mcncl/jsonorder/internal/models"
)

// Normalizer holds the options of a normalization run. It keeps no state
// between calls and is safe for concurrent use.
type Normalizer struct {
	policy config.MixedTypePolicy
	logger *slog.Logger
	debug  bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMixedTypePolicy sets how fields holding both strings and numbers are sorted.
func WithMixedTypePolicy(policy config.MixedTypePolicy) Option {
	return func(n *Normalizer) {
		n.policy = policy
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a Normalizer. Without options mixed-type fields are excluded
// and nothing is logged.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		policy: config.MixedTypeExclude,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.debug = n.logger.Enabled(context.Background(), slog.LevelDebug)
	return n
}

// NewFromConfig creates a Normalizer from the sorting section of cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Normalizer {
	return New(
		WithMixedTypePolicy(cfg.Sorting.MixedTypeFields),
		WithLogger(logger),
	)
}

// Normalize returns the canonical form of v. Objects and arrays are rebuilt
// recursively; scalars are returned unchanged.
func (n *Normalizer) Normalize(v models.Value) models.Value {
	return n.normalize(v, "$")
}

// OrderObject returns a copy of obj with keys in ascending order and every
// value normalized.
func (n *Normalizer) OrderObject(obj *models.Object) *models.Object {
	return n.orderObject(obj, "$")
}

// OrderArray returns a normalized copy of arr. See Classify for how the
// ordering strategy is chosen.
func (n *Normalizer) OrderArray(arr models.Array) models.Array {
	return n.orderArray(arr, "$")
}

func (n *Normalizer) normalize(v models.Value, path string) models.Value {
	switch v := v.(type) {
	case *models.Object:
		if v == nil {
			return v
		}
		return n.orderObject(v, path)
	case models.Array:
		return n.orderArray(v, path)
	default:
		return v
	}
}

func (n *Normalizer) orderObject(obj *models.Object, path string) *models.Object {
	members := obj.Members()
	sort.Slice(members, func(i, j int) bool {
		return members[i].Key < members[j].Key
	})
	for i := range members {
		members[i].Value = n.normalize(members[i].Value, n.memberPath(path, members[i].Key))
	}
	return models.NewObject(members...)
}

// Paths are only built for debug output.
func (n *Normalizer) memberPath(parent, key string) string {
	if !n.debug {
		return ""
	}
	return parent + "." + key
}

func (n *Normalizer) elementPath(parent string, index int) string {
	if !n.debug {
		return ""
	}
	return fmt.Sprintf("%s[%d]", parent, index)
}
