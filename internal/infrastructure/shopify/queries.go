package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document is a parsed Admin API GraphQL operation
type Document struct {
	Name      string
	Operation ast.Operation
	Query     string
	Variables map[string]bool
}

// MustParseDocument parses a single-operation GraphQL document and panics when it is malformed,
// so a broken document stops the process at startup
func MustParseDocument(query string) *Document {
	doc, err := ParseDocument(query)
	if err != nil {
		panic(err)
	}
	return doc
}

// ParseDocument parses a document holding exactly one named operation
func ParseDocument(query string) (*Document, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql document: %w", err)
	}
	if len(parsed.Operations) != 1 {
		return nil, fmt.Errorf("graphql document must contain exactly one operation, got %d", len(parsed.Operations))
	}

	op := parsed.Operations[0]
	if op.Name == "" {
		return nil, fmt.Errorf("graphql operation must be named")
	}

	variables := make(map[string]bool, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		variables[def.Variable] = true
	}

	return &Document{
		Name:      op.Name,
		Operation: op.Operation,
		Query:     query,
		Variables: variables,
	}, nil
}

// checkVariables rejects variables the document does not declare
func (d *Document) checkVariables(vars map[string]interface{}) error {
	for name := range vars {
		if !d.Variables[name] {
			return fmt.Errorf("variable %q is not declared by %s", name, d.Name)
		}
	}
	return nil
}

var productCursorsQuery = MustParseDocument(`
query ProductCursors($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`)

var productsPageQuery = MustParseDocument(`
query ProductsPage($first: Int!, $after: String, $namespace: String!, $key: String!) {
  products(first: $first, after: $after) {
    edges {
      cursor
      node {
        id
        title
        totalInventory
        metafield(namespace: $namespace, key: $key) {
          value
        }
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}`)

var productOptionsQuery = MustParseDocument(`
query ProductOptions($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        title
      }
    }
  }
}`)

var productMetafieldQuery = MustParseDocument(`
query ProductMetafield($id: ID!, $namespace: String!, $key: String!) {
  product(id: $id) {
    id
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}`)

var metafieldsSetMutation = MustParseDocument(`
mutation MetafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
      namespace
      key
    }
    userErrors {
      field
      message
      code
    }
  }
}`)

// Response shapes

type pageInfoResponse struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type metafieldValue struct {
	Value string `json:"value"`
}

type productCursorsResponse struct {
	Products struct {
		Edges []struct {
			Cursor string `json:"cursor"`
		} `json:"edges"`
		PageInfo pageInfoResponse `json:"pageInfo"`
	} `json:"products"`
}

type productsPageResponse struct {
	Products struct {
		Edges []struct {
			Cursor string `json:"cursor"`
			Node   struct {
				ID             string          `json:"id"`
				Title          string          `json:"title"`
				TotalInventory int             `json:"totalInventory"`
				Metafield      *metafieldValue `json:"metafield"`
			} `json:"node"`
		} `json:"edges"`
		PageInfo pageInfoResponse `json:"pageInfo"`
	} `json:"products"`
}

type productOptionsResponse struct {
	Products struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productMetafieldResponse struct {
	Product *struct {
		ID        string          `json:"id"`
		Metafield *metafieldValue `json:"metafield"`
	} `json:"product"`
}

type metafieldsSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

type metafieldsSetResponse struct {
	MetafieldsSet struct {
		Metafields []struct {
			ID        string `json:"id"`
			Namespace string `json:"namespace"`
			Key       string `json:"key"`
		} `json:"metafields"`
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
			Code    string   `json:"code"`
		} `json:"userErrors"`
	} `json:"metafieldsSet"`
}
