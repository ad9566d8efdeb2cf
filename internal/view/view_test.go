package view

import (
	"testing"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_StartsOnList(t *testing.T) {
	c := NewController[model.Product]()

	assert.Equal(t, ModeList, c.Mode())
	assert.Nil(t, c.EditTarget())
}

func TestController_ShowEditThenShowList(t *testing.T) {
	c := NewController[model.Product]()
	product := &model.Product{ID: 7, Name: "Thai Tea", Price: 15000}

	c.ShowEdit(product)
	require.Equal(t, ModeEdit, c.Mode())
	require.Same(t, product, c.EditTarget())

	c.ShowList()
	assert.Equal(t, ModeList, c.Mode())
	assert.Nil(t, c.EditTarget())
}

func TestController_ShowCreateNeverSetsEditTarget(t *testing.T) {
	c := NewController[model.Product]()

	c.ShowEdit(&model.Product{ID: 1})
	c.ShowCreate()

	assert.Equal(t, ModeCreate, c.Mode())
	assert.Nil(t, c.EditTarget())
}

func TestController_EditTargetTracksMode(t *testing.T) {
	c := NewController[model.Product]()

	// editTarget != nil exactly in edit mode, across every transition
	transitions := []struct {
		name string
		move func()
	}{
		{name: "edit", move: func() { c.ShowEdit(&model.Product{ID: 2}) }},
		{name: "create", move: func() { c.ShowCreate() }},
		{name: "edit again", move: func() { c.ShowEdit(&model.Product{ID: 3}) }},
		{name: "list", move: func() { c.ShowList() }},
		{name: "create from list", move: func() { c.ShowCreate() }},
		{name: "back to list", move: func() { c.ShowList() }},
	}

	for _, tr := range transitions {
		tr.move()
		if c.Mode() == ModeEdit {
			assert.NotNil(t, c.EditTarget(), tr.name)
		} else {
			assert.Nil(t, c.EditTarget(), tr.name)
		}
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "list", ModeList.String())
	assert.Equal(t, "create", ModeCreate.String())
	assert.Equal(t, "edit", ModeEdit.String())
}
