// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dsc-community/apt-adapter/model"
)

var (
	// keyed by lowercased type token, canonical names and aliases alike
	factories = make(map[string]model.ResourceFactory)
	mu        sync.Mutex
)

// Clear removes all registered resource factories
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	factories = make(map[string]model.ResourceFactory)
}

// Register registers a resource factory under its type name and aliases
// and returns an error when any token is already taken
func Register(f model.ResourceFactory) error {
	mu.Lock()
	defer mu.Unlock()

	tokens := append([]string{f.TypeName()}, f.Aliases()...)
	for _, t := range tokens {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			return fmt.Errorf("%w: empty type token", model.ErrDuplicateResource)
		}

		_, ok := factories[key]
		if ok {
			return fmt.Errorf("%w: %s", model.ErrDuplicateResource, t)
		}

		factories[key] = f
	}

	return nil
}

// MustRegister registers a resource factory and panics if registration fails
func MustRegister(f model.ResourceFactory) {
	err := Register(f)
	if err != nil {
		panic(err)
	}
}

// Resolve finds the factory for a resource type token, matching case-insensitively
func Resolve(token string) (model.ResourceFactory, error) {
	key := strings.ToLower(strings.TrimSpace(token))
	if key == "" {
		return nil, model.ErrResourceTypeRequired
	}

	mu.Lock()
	f, ok := factories[key]
	mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s", model.ErrUnknownResourceType, token, strings.Join(Types(), ", "))
	}

	return f, nil
}

// Types returns the sorted canonical type names of all registered resources
func Types() []string {
	mu.Lock()
	defer mu.Unlock()

	seen := make(map[string]struct{})
	var res []string
	for _, f := range factories {
		tn := f.TypeName()
		if _, ok := seen[tn]; ok {
			continue
		}
		seen[tn] = struct{}{}
		res = append(res, tn)
	}

	sort.Strings(res)

	return res
}

// Factories returns every registered factory once, sorted by type name
func Factories() []model.ResourceFactory {
	mu.Lock()
	defer mu.Unlock()

	byType := make(map[string]model.ResourceFactory)
	for _, f := range factories {
		byType[f.TypeName()] = f
	}

	var names []string
	for tn := range byType {
		names = append(names, tn)
	}
	sort.Strings(names)

	res := make([]model.ResourceFactory, 0, len(names))
	for _, tn := range names {
		res = append(res, byType[tn])
	}

	return res
}
