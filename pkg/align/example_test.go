package align_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/pangraph/pkg/align"
)

func ExampleBuild() {
	table := map[string]string{"1": "CAAATAAG", "2": "A", "3": "G", "4": "G"}
	steps := func(nodes ...string) []align.Step {
		var out []align.Step
		for _, n := range nodes {
			out = append(out, align.Step{Node: n})
		}
		return out
	}
	inputs := []align.Input{
		{Accession: "x", Steps: steps("1", "2", "4")},
		{Accession: "y", Steps: steps("1", "2", "4")},
		{Accession: "z", Steps: steps("1", "3", "4")},
	}

	g, res, err := align.Build(context.Background(), inputs, align.Options{Name: "toy", Table: table})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("primary:", res.PrimaryAccession, "duplicates:", res.Duplicates)
	slices, _ := g.Slices(0)
	for _, s := range slices {
		fmt.Println(s)
	}
	// Output:
	// primary: x duplicates: 0
	// {"CAAATAAG":{x,y,z}}
	// {"A":{x,y}, "G":{z}}
	// {"G":{x,y,z}}
}
