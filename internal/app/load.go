package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/format"
	"github.com/vk/pipeweld/internal/fsutil"
)

// maxProviderDepth bounds provider chains; a fetched fragment may itself
// declare a provider.
const maxProviderDepth = 4

// loadBuilder discovers every fragment under the configured paths, merges
// them in discovery order, and resolves any configuration provider the merged
// result declares.
func (a *App) loadBuilder(ctx context.Context) (*config.Builder, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range a.config.ConfigPaths {
		found, err := fsutil.FindFilesByExtensions(path, format.Extensions())
		if err != nil {
			return nil, fmt.Errorf("discovering config files under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no configuration files found in: %s", strings.Join(a.config.ConfigPaths, ", "))
	}
	logger.Debug("Discovered config files.", "count", len(files))

	builder := config.NewBuilder()
	var mergeErrs []string
	for _, file := range files {
		fragment, err := a.loadFragment(file)
		if err != nil {
			return nil, err
		}
		for _, mergeErr := range builder.Append(fragment) {
			mergeErrs = append(mergeErrs, fmt.Sprintf("%s: %s", file, mergeErr))
		}
	}
	if len(mergeErrs) > 0 {
		return nil, fmt.Errorf("merging configuration files failed:\n- %s", strings.Join(mergeErrs, "\n- "))
	}

	return a.resolveProviders(ctx, builder)
}

func (a *App) loadFragment(path string) (*config.Builder, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fragment, err := format.Deserialize(data, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fragment, nil
}

// resolveProviders repeatedly fetches and merges provider-served fragments
// until the builder no longer carries a provider.
func (a *App) resolveProviders(ctx context.Context, builder *config.Builder) (*config.Builder, error) {
	logger := ctxlog.FromContext(ctx)

	for depth := 0; builder.Provider != nil; depth++ {
		if depth == maxProviderDepth {
			return nil, fmt.Errorf("configuration providers nested more than %d levels deep", maxProviderDepth)
		}
		providerCfg := builder.Provider
		builder.Provider = nil

		logger.Info("Resolving configuration provider.", "type", providerCfg.ComponentType())
		provider, err := providerCfg.Build(ctx)
		if err != nil {
			return nil, fmt.Errorf("building %s provider: %w", providerCfg.ComponentType(), err)
		}
		data, err := provider.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching config from %s provider: %w", providerCfg.ComponentType(), err)
		}
		f, err := format.FromName(provider.FragmentFormat())
		if err != nil {
			return nil, fmt.Errorf("%s provider: %w", providerCfg.ComponentType(), err)
		}
		fragment, err := format.Deserialize(data, f)
		if err != nil {
			return nil, fmt.Errorf("parsing fragment from %s provider: %w", providerCfg.ComponentType(), err)
		}
		if errs := builder.Append(fragment); len(errs) > 0 {
			return nil, fmt.Errorf("merging provider configuration failed:\n- %s", strings.Join(errs, "\n- "))
		}
	}
	return builder, nil
}
