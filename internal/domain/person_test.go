package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/treelife/internal/domain"
)

func TestPerson_HasOrdered(t *testing.T) {
	treeID := int64(7)

	assert.False(t, (&domain.Person{}).HasOrdered())
	assert.True(t, (&domain.Person{OrderedTree: &treeID}).HasOrdered())
}

func TestTree_InStock(t *testing.T) {
	tests := []struct {
		name    string
		tree    domain.Tree
		inStock bool
	}{
		{"free stock", domain.Tree{StockAvailable: 3, PersonsOrdered: 1}, true},
		{"last one", domain.Tree{StockAvailable: 1, PersonsOrdered: 0}, true},
		{"sold out", domain.Tree{StockAvailable: 2, PersonsOrdered: 2}, false},
		{"oversold", domain.Tree{StockAvailable: 1, PersonsOrdered: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inStock, tt.tree.InStock())
		})
	}
}
