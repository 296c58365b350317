package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/core/installer"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/ui"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

const testConfigPHP = `<?php

$aggregator = new ConfigAggregator([
    \Mezzio\ConfigProvider::class,
    // Default App module config
    App\ConfigProvider::class,
], $cacheConfig['config_cache_path']);
`

const testPipelinePHP = `<?php

return function (Application $app): void {
    $app->pipe(ErrorHandler::class);
    $app->pipe(ServerUrlMiddleware::class);

    // Register the routing middleware in the middleware pipeline.
    $app->pipe(RouteMiddleware::class);

    // Register the dispatch middleware in the middleware pipeline
    $app->pipe(DispatchMiddleware::class);
};
`

const testRootManifest = `{
    "name": "methorz/mezzio-hexagonal-skeleton",
    "require": {
        "php": "~8.3.0",
        "mezzio/mezzio": "^3.20"
    },
    "autoload": {
        "psr-4": {
            "App\\": "backend/src/App/",
            "Installer\\": "installer/src/"
        }
    }
}
`

const testBackendManifest = `{
    "name": "methorz/mezzio-hexagonal-backend",
    "require": {
        "php": "~8.3.0"
    }
}
`

const testCatalogYAML = `features:
  - key: request-id
    group: observability
    prompt: Attach a correlation ID?
    default: true
    packages:
      methorz/http-request-id: "^1.0"
    provider: MethorZ\RequestId\ConfigProvider
    middleware: MethorZ\RequestId\RequestIdMiddleware
    position: early
  - key: cors
    group: security
    prompt: Enable CORS handling?
    packages:
      mezzio/mezzio-cors: "^1.13"
    middleware: Mezzio\Cors\Middleware\CorsMiddleware
    position: after-routing
`

// setupSkeleton writes a minimal skeleton with a two-feature catalog.
func setupSkeleton(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"composer.json":                      testRootManifest,
		"backend/composer.json":              testBackendManifest,
		"backend/config/config.php":          testConfigPHP,
		"backend/config/pipeline.php":        testPipelinePHP,
		"backend/src/App/ConfigProvider.php": "<?php\n",
		"installer/catalog.yaml":             testCatalogYAML,
		"installer/docs/README.flat.md":      "# Flat\n",
		"installer/docs/README.layered.md":   "# Layered\n",
		"installer/docs/ARCHITECTURE.md":     "# Architecture\n",

		"installer/templates/layered/modules/Core/Kernel.php":                "<?php\n",
		"installer/templates/layered/modules/Article/ConfigProvider.php":     "<?php\n",
		"installer/templates/layered/modules/HealthCheck/ConfigProvider.php": "<?php\n",
	}
	for _, arch := range []string{"flat", "layered"} {
		files["installer/templates/"+arch+"/base/config/config.php"] = testConfigPHP
		files["installer/templates/"+arch+"/base/config/pipeline.php"] = testPipelinePHP
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// runCLI executes the command tree headless and returns stdout.
func runCLI(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	e := newEnv()
	e.headless.ForceHeadless(true)
	e.logOut = io.Discard

	cmd := newRootCommand(e)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

func TestInstall_NonInteractive(t *testing.T) {
	root := setupSkeleton(t)

	out, err := runCLI(t, context.Background(), nil, "install", root, "--non-interactive")
	if err != nil {
		t.Fatalf("install error: %v\n%s", err, out)
	}

	if !strings.Contains(out, "Skeleton installed") {
		t.Errorf("output missing completion card:\n%s", out)
	}
	if !strings.Contains(out, "Selected: request-id") || strings.Contains(out, "Selected: cors") {
		t.Errorf("defaults not applied:\n%s", out)
	}
	if exists(root, "installer") || exists(root, "composer.json") {
		t.Error("installer or root manifest still present after install")
	}
	if got := readFile(t, root, "README.md"); got != "# Flat\n" {
		t.Errorf("README.md = %q, want flat README", got)
	}
	if !strings.Contains(readFile(t, root, "backend/config/pipeline.php"), `\MethorZ\RequestId\RequestIdMiddleware::class`) {
		t.Error("request-id middleware not registered")
	}
	if !strings.Contains(readFile(t, root, "backend/composer.json"), `"methorz/http-request-id": "^1.0"`) {
		t.Error("request-id package not synced into the backend manifest")
	}
}

func TestInstall_Flags(t *testing.T) {
	t.Run("arch_and_with", func(t *testing.T) {
		root := setupSkeleton(t)
		out, err := runCLI(t, context.Background(), nil, "install", root, "--arch", "layered", "--with", "cors", "--keep-installer")
		if err != nil {
			t.Fatalf("install error: %v\n%s", err, out)
		}
		if !exists(root, "installer") {
			t.Error("--keep-installer removed the installer directory")
		}
		if !exists(root, "backend/src/Article/ConfigProvider.php") || exists(root, "backend/src/App") {
			t.Error("layered modules not materialized")
		}
		pipeline := readFile(t, root, "backend/config/pipeline.php")
		if !strings.Contains(pipeline, "CorsMiddleware") || strings.Contains(pipeline, "RequestIdMiddleware") {
			t.Errorf("pipeline does not hold exactly the cors middleware:\n%s", pipeline)
		}
	})

	t.Run("empty_with_selects_nothing", func(t *testing.T) {
		root := setupSkeleton(t)
		out, err := runCLI(t, context.Background(), nil, "--with=", root)
		if err != nil {
			t.Fatalf("install error: %v\n%s", err, out)
		}
		if !strings.Contains(out, "Selected: no optional features") {
			t.Errorf("output = %s, want no optional features", out)
		}
		if got := readFile(t, root, "backend/config/pipeline.php"); got != testPipelinePHP {
			t.Errorf("pipeline.php changed without features:\n%s", got)
		}
	})

	t.Run("invalid_arch", func(t *testing.T) {
		root := setupSkeleton(t)
		_, err := runCLI(t, context.Background(), nil, "install", root, "--arch", "hexagon")
		if err == nil || !strings.Contains(err.Error(), "invalid --arch") {
			t.Errorf("error = %v, want invalid --arch", err)
		}
		if !exists(root, "installer") {
			t.Error("installer removed after flag error")
		}
	})

	t.Run("unknown_feature", func(t *testing.T) {
		root := setupSkeleton(t)
		_, err := runCLI(t, context.Background(), nil, "install", root, "--with", "cors,graphql")
		if err == nil || !strings.Contains(err.Error(), "graphql") {
			t.Errorf("error = %v, want unknown feature graphql", err)
		}
	})
}

func TestInstall_LinePrompts(t *testing.T) {
	root := setupSkeleton(t)
	// architecture, request-id, cors
	stdin := strings.NewReader("l\nn\ny\n")

	out, err := runCLI(t, context.Background(), stdin, root)
	if err != nil {
		t.Fatalf("install error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Selected: Layered (hexagonal) architecture") {
		t.Errorf("layered answer not applied:\n%s", out)
	}
	if got := readFile(t, root, "README.md"); got != "# Layered\n" {
		t.Errorf("README.md = %q, want layered README", got)
	}
	if !exists(root, "docs/ARCHITECTURE.md") {
		t.Error("ARCHITECTURE.md not written for layered install")
	}
	if !strings.Contains(out, "[1/") {
		t.Errorf("headless progress not printed:\n%s", out)
	}
}

func TestInstall_Cancelled(t *testing.T) {
	root := setupSkeleton(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	out, err := runCLI(t, ctx, pr, root)
	if err != nil {
		t.Fatalf("cancelled install error = %v, want nil", err)
	}
	if !strings.Contains(out, "Installation cancelled.") {
		t.Errorf("output missing cancellation message:\n%s", out)
	}
	if got := readFile(t, root, "composer.json"); got != testRootManifest {
		t.Error("root manifest modified by a cancelled run")
	}
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	root := t.TempDir()
	_, err := runCLI(t, context.Background(), nil, "install", root, "--non-interactive")
	if !errors.Is(err, installer.ErrAlreadyInstalled) {
		t.Errorf("error = %v, want ErrAlreadyInstalled", err)
	}
}

func TestLoggerLevel(t *testing.T) {
	e := &env{headless: ui.NewHeadlessManager(), logOut: io.Discard}
	if e.logger().Enabled(context.Background(), -4) {
		t.Error("debug enabled without --verbose")
	}
	e.verbose = true
	if !e.logger().Enabled(context.Background(), -4) {
		t.Error("debug disabled with --verbose")
	}
}

func TestNextSteps(t *testing.T) {
	l := config.NewDefaultLayout()

	flat := nextSteps(&installer.Result{Selection: models.Selection{Architecture: models.ArchFlat}}, "/srv/app", l)
	if !strings.Contains(flat, "composer install") || strings.Contains(flat, l.ArchitectureDoc) {
		t.Errorf("flat next steps = %q", flat)
	}

	layered := nextSteps(&installer.Result{
		Selection: models.Selection{Architecture: models.ArchLayered},
		Stages:    []installer.StageResult{{OK: true, Warnings: []string{"marker missing"}}},
	}, "/srv/app", l)
	for _, want := range []string{l.ArchitectureDoc, l.PipelineFile} {
		if !strings.Contains(layered, want) {
			t.Errorf("layered next steps missing %q:\n%s", want, layered)
		}
	}
}
