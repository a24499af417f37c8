package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
)

// getAllProtoInfo uses DFS to parse protoFile and everything it imports,
// returning the resolved paths of the files parsed by this call. Files parsed
// by an earlier call are neither parsed nor returned again.
func (r *Registry) getAllProtoInfo(protoFile string) ([]string, error) {
	result := make([]string, 0)

	var dfs func(protoPath string) error
	dfs = func(protoPath string) error {
		if _, ok := r.parsedProtoBody[protoPath]; ok {
			return nil
		}

		protoBytes, err := os.ReadFile(protoPath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		parsedBody, err := protoparser.Parse(bytes.NewReader(protoBytes), protoparser.WithFilename(filepath.Base(protoPath)))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", protoPath, err)
		}
		r.parsedProtoBody[protoPath] = parsedBody
		result = append(result, protoPath)

		for _, body := range parsedBody.ProtoBody {
			imp, ok := body.(*protoparserparser.Import) // resolve relation for each import
			if !ok {
				continue
			}
			importPath := strings.Trim(imp.Location, `"`)
			// Well-known types ship with protoc, not with the schema.
			if strings.HasPrefix(importPath, "google/protobuf/") {
				continue
			}
			fullImportPath, err := r.findIfProtoExists(importPath)
			if err != nil {
				return err
			}
			if err := dfs(fullImportPath); err != nil {
				return err
			}
		}
		return nil
	}

	protoPath, err := r.findIfProtoExists(protoFile)
	if err != nil {
		return nil, err
	}
	if err := dfs(protoPath); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Registry) findIfProtoExists(protoPath string) (string, error) {
	if !strings.HasSuffix(protoPath, ".proto") {
		return "", fmt.Errorf("is not a .proto file: %s", protoPath)
	}
	var err error
	for _, dir := range r.ProtoDirectories {
		fullPath := filepath.Join(dir, protoPath)
		if _, err = os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("proto file %s not found in %v: %w", protoPath, r.ProtoDirectories, err)
}

func parseFieldNumber(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid field number %q: %w", s, err)
	}
	return int32(n), nil
}

// toCamel turns a snake_case field name into the CamelCase protoc uses for
// map entry message names.
func toCamel(s string) string {
	var sb strings.Builder
	upperNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		upperNext = false
		sb.WriteByte(c)
	}
	return sb.String()
}

/*
getReferencedType returns the fully qualified name a type reference points
at, be it top level, nested or imported. Resolution follows protoc's scoping
rules: a leading dot means fully qualified, otherwise the innermost enclosing
scope wins.
Ref - https://github.com/protocolbuffers/protobuf/blob/b7a5772caf08d62a20fd1bca258f501fa4db022c/src/google/protobuf/descriptor.proto#L186-L191
*/
func getReferencedType(typeName, scope string, allResolvedEntities map[string]struct{}) (string, error) {
	if strings.HasPrefix(typeName, ".") {
		typeName = strings.TrimPrefix(typeName, ".")
		if _, ok := allResolvedEntities[typeName]; ok {
			return typeName, nil
		}
		return "", fmt.Errorf("unable to resolve fully qualified type name: .%s", typeName)
	}
	if result, ok := splitNameAndCheck(typeName, scope, allResolvedEntities); ok {
		return result, nil
	}
	// referenced from another package via its package name
	if _, ok := allResolvedEntities[typeName]; ok {
		return typeName, nil
	}
	return "", fmt.Errorf("unable to resolve type name: %s", typeName)
}

// splitNameAndCheck appends typeName to ever shorter prefixes of scope until
// a registered entity matches.
func splitNameAndCheck(typeName, scope string, allResolvedEntities map[string]struct{}) (string, bool) {
	prefixSplit := strings.Split(scope, ".")
	for len(prefixSplit) > 0 && prefixSplit[0] != "" {
		entityName := strings.Join(prefixSplit, ".") + "." + typeName
		if _, ok := allResolvedEntities[entityName]; ok {
			return entityName, true
		}
		// Omit the last element in each iteration as we go level above to outer entity
		prefixSplit = prefixSplit[:len(prefixSplit)-1]
	}
	return "", false
}
