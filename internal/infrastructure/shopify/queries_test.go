package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestDocumentsParse(t *testing.T) {
	docs := map[string]*Document{
		"ProductCursors":   productCursorsQuery,
		"ProductsPage":     productsPageQuery,
		"ProductOptions":   productOptionsQuery,
		"ProductMetafield": productMetafieldQuery,
		"MetafieldsSet":    metafieldsSetMutation,
	}
	for name, doc := range docs {
		assert.Equal(t, name, doc.Name)
	}

	assert.Equal(t, ast.Mutation, metafieldsSetMutation.Operation)
	assert.Equal(t, ast.Query, productsPageQuery.Operation)
	assert.True(t, productsPageQuery.Variables["namespace"])
	assert.True(t, productsPageQuery.Variables["after"])
}

func TestParseDocumentRejects(t *testing.T) {
	cases := map[string]string{
		"syntax error":       `query Broken { products(first: 1) { edges { cursor }`,
		"anonymous":          `{ shop { name } }`,
		"several operations": `query A { shop { name } } query B { shop { id } }`,
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDocument(query)
			assert.Error(t, err)
		})
	}
}

func TestCheckVariables(t *testing.T) {
	require.NoError(t, productCursorsQuery.checkVariables(map[string]interface{}{"first": 5, "after": nil}))
	assert.Error(t, productCursorsQuery.checkVariables(map[string]interface{}{"query": "title:*"}))
}
