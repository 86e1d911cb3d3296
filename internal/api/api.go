// Package api は配信エンドポイントのOpenAPI定義を提供する
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Document は埋め込まれたOpenAPI定義（YAML）を返す
func Document() []byte {
	return document
}

// Load はOpenAPI定義を読み込んで検証する
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("OpenAPI定義の読み込みに失敗: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("OpenAPI定義の検証に失敗: %w", err)
	}

	return doc, nil
}
