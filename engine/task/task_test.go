package task

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drepelov/pubtools-pulplib/engine/unit"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestNew(t *testing.T) {
	t.Run("Should accept an empty ID", func(t *testing.T) {
		tsk, err := New(Params{})
		require.NoError(t, err)
		assert.Equal(t, "", tsk.ID())
	})

	t.Run("Should reject nil unit entries as invalid data", func(t *testing.T) {
		_, err := New(Params{ID: "abc", UnitsData: []map[string]any{{"type_id": "rpm"}, nil}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidData)
		assert.NotErrorIs(t, err, ErrMissingField)
		assert.Equal(t, "invalid task field units_data[1]: failed required", err.Error())
	})

	t.Run("Should leave unknown flags unset", func(t *testing.T) {
		tsk, err := New(Params{ID: "abc"})
		require.NoError(t, err)
		assert.Nil(t, tsk.Completed())
		assert.Nil(t, tsk.Succeeded())
		assert.Nil(t, tsk.ErrorSummary())
		assert.Nil(t, tsk.ErrorDetails())
		assert.Nil(t, tsk.RepoID())
		assert.Empty(t, tsk.Units())
	})

	t.Run("Should reject succeeded without completed", func(t *testing.T) {
		cases := []struct {
			name      string
			completed *bool
			shown     string
		}{
			{name: "completed false", completed: boolPtr(false), shown: "false"},
			{name: "completed unknown", completed: nil, shown: "unknown"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := New(Params{ID: "abc", Completed: tc.completed, Succeeded: boolPtr(true)})
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidState)
				assert.Equal(t, fmt.Sprintf("cannot have task with completed=%s, succeeded=true", tc.shown), err.Error())
			})
		}
	})

	t.Run("Should accept every other flag combination", func(t *testing.T) {
		flags := []*bool{nil, boolPtr(false), boolPtr(true)}
		for _, completed := range flags {
			for _, succeeded := range flags {
				if succeeded != nil && *succeeded && (completed == nil || !*completed) {
					continue
				}
				_, err := New(Params{ID: "abc", Completed: completed, Succeeded: succeeded})
				assert.NoError(t, err)
			}
		}
	})
}

func TestNew_RepoID(t *testing.T) {
	t.Run("Should use the first repository tag", func(t *testing.T) {
		tsk, err := New(Params{
			ID:   "abc",
			Tags: []string{"pulp:action:publish", "pulp:repository:X", "pulp:repository:Y"},
		})
		require.NoError(t, err)
		assert.Equal(t, strPtr("X"), tsk.RepoID())
	})

	t.Run("Should be unset without a repository tag", func(t *testing.T) {
		tsk, err := New(Params{ID: "abc", Tags: []string{"pulp:action:publish"}})
		require.NoError(t, err)
		assert.Nil(t, tsk.RepoID())
	})

	t.Run("Should prefer an explicit repo ID over tags", func(t *testing.T) {
		tsk, err := New(Params{
			ID:     "abc",
			Tags:   []string{"pulp:repository:X"},
			RepoID: strPtr("explicit"),
		})
		require.NoError(t, err)
		assert.Equal(t, strPtr("explicit"), tsk.RepoID())
	})

	t.Run("Should allow an empty repository suffix", func(t *testing.T) {
		tsk, err := New(Params{ID: "abc", Tags: []string{"pulp:repository:"}})
		require.NoError(t, err)
		assert.Equal(t, strPtr(""), tsk.RepoID())
	})
}

func TestNew_Units(t *testing.T) {
	t.Run("Should derive units from units data", func(t *testing.T) {
		for n := range 5 {
			raw := make([]map[string]any, 0, n)
			for i := range n {
				typeID := "rpm"
				if i%2 == 1 {
					typeID = unit.ErratumContentType
				}
				raw = append(raw, map[string]any{
					"type_id":  typeID,
					"unit_key": map[string]any{"id": fmt.Sprintf("unit-%d", i)},
				})
			}

			tsk, err := New(Params{ID: "abc", UnitsData: raw})
			require.NoError(t, err)

			units := tsk.Units()
			data := tsk.UnitsData()
			require.Len(t, units, n)
			require.Len(t, data, n)
			for i := range units {
				assert.Equal(t, data[i]["type_id"], units[i].ContentTypeID())
			}
		}
	})

	t.Run("Should isolate units data from callers", func(t *testing.T) {
		raw := []map[string]any{{"type_id": "rpm", "unit_key": map[string]any{"name": "bash"}}}
		tsk, err := New(Params{ID: "abc", UnitsData: raw})
		require.NoError(t, err)

		raw[0]["unit_key"].(map[string]any)["name"] = "zsh"
		got := tsk.UnitsData()
		got[0]["type_id"] = "iso"

		assert.Equal(t, []map[string]any{
			{"type_id": "rpm", "unit_key": map[string]any{"name": "bash"}},
		}, tsk.UnitsData())
	})

	t.Run("Should fail on an unconvertible unit", func(t *testing.T) {
		_, err := New(Params{ID: "abc", UnitsData: []map[string]any{
			{"type_id": "rpm"},
			{"unit_key": map[string]any{}},
		}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidUnit)
		assert.ErrorIs(t, err, unit.ErrMissingType)
		assert.Contains(t, err.Error(), "task unit 1")
	})

	t.Run("Should reject unmodeled content types when strict", func(t *testing.T) {
		_, err := New(
			Params{ID: "abc", UnitsData: []map[string]any{{"type_id": "rpm"}}},
			WithStrictUnits(true),
		)
		assert.ErrorIs(t, err, ErrInvalidUnit)
		assert.ErrorIs(t, err, unit.ErrUnsupportedType)
	})
}

func TestTask_Params(t *testing.T) {
	t.Run("Should round trip through New", func(t *testing.T) {
		orig, err := New(Params{
			ID:           "abc",
			Completed:    boolPtr(true),
			Succeeded:    boolPtr(false),
			ErrorSummary: strPtr("Task [abc] was canceled"),
			ErrorDetails: strPtr("Task [abc] was canceled"),
			Tags:         []string{"pulp:repository:X"},
			UnitsData:    []map[string]any{{"type_id": "rpm", "unit_key": map[string]any{"name": "bash"}}},
		})
		require.NoError(t, err)

		params := orig.Params()
		assert.Equal(t, strPtr("X"), params.RepoID)

		copied, err := New(params)
		require.NoError(t, err)
		assert.Equal(t, orig, copied)
	})

	t.Run("Should keep an explicit repo ID that disagrees with tags", func(t *testing.T) {
		orig, err := New(Params{ID: "abc", Tags: []string{"pulp:repository:X"}, RepoID: strPtr("Y")})
		require.NoError(t, err)
		copied, err := New(orig.Params())
		require.NoError(t, err)
		assert.Equal(t, strPtr("Y"), copied.RepoID())
	})
}

func TestTask_Accessors(t *testing.T) {
	t.Run("Should not expose internal state", func(t *testing.T) {
		tsk, err := New(Params{ID: "abc", Completed: boolPtr(true), Tags: []string{"a", "b"}})
		require.NoError(t, err)

		*tsk.Completed() = false
		tags := tsk.Tags()
		tags[0] = "changed"

		assert.Equal(t, boolPtr(true), tsk.Completed())
		assert.Equal(t, []string{"a", "b"}, tsk.Tags())
	})
}

func TestFromData_UnitsDataFidelity(t *testing.T) {
	t.Run("Should return raw unit values unchanged", func(t *testing.T) {
		const size = int64(9007199254740993)
		tsk, err := FromData(testContext(), map[string]any{
			"task_id": "abc",
			"state":   "finished",
			"result": map[string]any{
				"units_successful": []any{
					map[string]any{"type_id": "iso", "unit_key": map[string]any{"name": "disk.iso", "size": size}},
				},
			},
		})
		require.NoError(t, err)

		data := tsk.UnitsData()
		require.Len(t, data, 1)
		assert.Equal(t, size, data[0]["unit_key"].(map[string]any)["size"])
		assert.Equal(t, &unit.GenericUnit{
			TypeID: "iso",
			Fields: map[string]any{"name": "disk.iso", "size": size},
		}, tsk.Units()[0])
	})

	t.Run("Should keep large integers exact from JSON", func(t *testing.T) {
		tsk, err := FromJSON(testContext(), []byte(`{
			"task_id": "abc",
			"state": "finished",
			"result": {"units_successful": [{"type_id": "iso", "unit_key": {"size": 9007199254740993}}]}
		}`))
		require.NoError(t, err)
		assert.Equal(t, int64(9007199254740993), tsk.UnitsData()[0]["unit_key"].(map[string]any)["size"])
	})
}
