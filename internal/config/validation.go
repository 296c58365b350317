package config

import (
	"path"
	"slices"
	"strconv"
	"strings"
)

// Validate checks the layout for missing values and unsafe paths.
func Validate(l *Layout) error {
	var errs []ValidationError

	errs = append(errs, validatePaths(l)...)
	errs = append(errs, validateMarkers(&l.Markers)...)
	errs = append(errs, validateModules(l)...)

	if l.ExcludedPackage == "" {
		errs = append(errs, required("excluded_package"))
	}
	if l.InstallerNamespace == "" {
		errs = append(errs, required("installer_namespace"))
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validatePaths(l *Layout) []ValidationError {
	var errs []ValidationError

	fields := []struct {
		name  string
		value string
	}{
		{"installer_dir", l.InstallerDir},
		{"backend_dir", l.BackendDir},
		{"root_manifest", l.RootManifest},
		{"root_lock", l.RootLock},
		{"backend_manifest", l.BackendManifest},
		{"config_file", l.ConfigFile},
		{"pipeline_file", l.PipelineFile},
		{"autoload_config_dir", l.AutoloadConfigDir},
		{"templates_dir", l.TemplatesDir},
		{"docs_dir", l.DocsDir},
		{"readme", l.Readme},
		{"architecture_doc", l.ArchitectureDoc},
		{"flat.source_dir", l.Flat.SourceDir},
	}
	for _, f := range fields {
		if f.value == "" {
			errs = append(errs, required(f.name))
			continue
		}
		if !isContainedPath(f.value) {
			errs = append(errs, unsafePath(f.name, f.value))
		}
	}

	for i, p := range l.RootQualityFiles {
		if !isContainedPath(p) {
			errs = append(errs, unsafePath("root_quality_files["+strconv.Itoa(i)+"]", p))
		}
	}
	for i, p := range l.CacheFiles {
		if !isContainedPath(p) {
			errs = append(errs, unsafePath("cache_files["+strconv.Itoa(i)+"]", p))
		}
	}

	if l.InstallerDir != "" && isContainedPath(l.InstallerDir) && path.Clean(l.InstallerDir) == "." {
		errs = append(errs, ValidationError{
			Field:   "installer_dir",
			Message: "must name a subdirectory; the project root cannot be removed",
			Value:   l.InstallerDir,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateMarkers(m *Markers) []ValidationError {
	var errs []ValidationError

	markers := []struct {
		name  string
		value string
	}{
		{"markers.provider", m.Provider},
		{"markers.first", m.First},
		{"markers.early", m.Early},
		{"markers.after_routing", m.AfterRouting},
	}
	seen := make(map[string]string, len(markers))
	for i, mk := range markers {
		if strings.TrimSpace(mk.value) == "" {
			errs = append(errs, required(mk.name))
			continue
		}
		if strings.ContainsAny(mk.value, "\r\n") {
			errs = append(errs, ValidationError{
				Field:   mk.name,
				Message: "marker must be a single line",
				Value:   mk.value,
				Wrapped: ErrInvalidConfig,
			})
		}
		if i == 0 {
			// The provider marker lives in a different file.
			continue
		}
		if other, dup := seen[mk.value]; dup {
			errs = append(errs, ValidationError{
				Field:   mk.name,
				Message: "pipeline markers must be distinct; duplicates " + other,
				Value:   mk.value,
				Wrapped: ErrInvalidConfig,
			})
		}
		seen[mk.value] = mk.name
	}
	return errs
}

func validateModules(l *Layout) []ValidationError {
	var errs []ValidationError

	if l.Flat.Module == "" {
		errs = append(errs, required("flat.module"))
	}
	if len(l.Layered.Modules) == 0 {
		errs = append(errs, required("layered.modules"))
	}
	for _, m := range append(slices.Clone(l.Layered.Modules), l.Flat.Module) {
		if m != "" && !isModuleName(m) {
			errs = append(errs, ValidationError{
				Field:   "module",
				Message: "module names must be PHP identifiers",
				Value:   m,
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	for _, m := range l.Layered.ProviderModules {
		if !slices.Contains(l.Layered.Modules, m) {
			errs = append(errs, ValidationError{
				Field:   "layered.provider_modules",
				Message: "provider module is not listed in layered.modules",
				Value:   m,
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

// isContainedPath reports whether p is relative and stays inside the root.
func isContainedPath(p string) bool {
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) || (len(p) > 1 && p[1] == ':') {
		return false
	}
	cleaned := path.Clean(p)
	return cleaned != ".." && !strings.HasPrefix(cleaned, "../")
}

func isModuleName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

func required(field string) ValidationError {
	return ValidationError{Field: field, Message: "required field is empty", Wrapped: ErrInvalidConfig}
}

func unsafePath(field, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Message: "path must be relative and stay inside the project root",
		Value:   value,
		Wrapped: ErrInvalidConfig,
	}
}
