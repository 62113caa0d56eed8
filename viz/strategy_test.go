package viz

import "testing"

func TestShouldOrchestrate(t *testing.T) {
	tests := []struct {
		name string
		step *UIRStep
		want bool
	}{
		{"nil step", nil, false},
		{"no entities", &UIRStep{}, false},
		{
			"single array entity",
			&UIRStep{Entities: []Entity{{ID: "a", Type: EntityArray}}},
			false,
		},
		{
			"heterogeneous types",
			&UIRStep{Entities: []Entity{
				{ID: "a", Type: EntityArray},
				{ID: "h", Type: EntityHashMap},
			}},
			true,
		},
		{
			"two instances of one type",
			&UIRStep{Entities: []Entity{
				{ID: "a1", Type: EntityArray},
				{ID: "a2", Type: EntityArray},
			}},
			true,
		},
		{
			"single linkedlist forces orchestration",
			&UIRStep{Entities: []Entity{{ID: "l", Type: EntityLinkedList}}},
			true,
		},
		{
			"linkedlist among others forces orchestration",
			&UIRStep{Entities: []Entity{
				{ID: "l", Type: EntityLinkedList},
				{ID: "a", Type: EntityArray},
			}},
			true,
		},
		{
			"single unknown type stays legacy",
			&UIRStep{Entities: []Entity{{ID: "u", Type: "quadtree"}}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldOrchestrate(tt.step); got != tt.want {
				t.Errorf("ShouldOrchestrate = %v, want %v", got, tt.want)
			}
		})
	}
}
