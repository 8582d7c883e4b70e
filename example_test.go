package auc_test

import (
	"fmt"
	"slices"
	"strings"

	auc "github.com/jamesainslie/go-auc"
)

type person struct {
	name   string
	female bool
}

var people = []person{
	{"Kyra", true}, {"Angelique", true}, {"Sofia", true}, {"Hana", true}, {"Zoe", true},
	{"Winston", false}, {"Omar", false}, {"Desmond", false}, {"Elvis", false}, {"Tony", false},
}

func endsWithVowel(name string) float64 {
	if strings.ContainsRune("aeiouy", rune(name[len(name)-1])) {
		return 1
	}
	return 0
}

func ExampleROCAUC() {
	score, ok := auc.ROCAUC(slices.Values(people), func(p person) (bool, float64) {
		return p.female, endsWithVowel(p.name)
	})
	fmt.Println(score, ok)
	// Output: 0.9 true
}

func ExamplePRAUCMut() {
	samples := []auc.Sample[float64]{
		{Label: false, Score: 1},
		{Label: false, Score: 2},
		{Label: true, Score: 2},
		{Label: true, Score: 3},
	}
	score, _ := auc.PRAUCMut(samples)
	fmt.Printf("%.4f\n", score)
	// Output: 0.9167
}

func ExamplePRAUCMutSparse() {
	samples := []auc.Sample[float64]{
		{Label: false, Score: 0.1},
		{Label: false, Score: 0.2},
		{Label: false, Score: 0.3},
		{Label: true, Score: 0.35},
		{Label: false, Score: 0.4},
	}
	score, _ := auc.PRAUCMutSparse(samples)
	fmt.Printf("%.4f\n", score)
	// Output: 0.2500
}

func ExampleValidate() {
	err := auc.Validate([]auc.Sample[float64]{{Label: true, Score: 0.5}})
	fmt.Println(err)
	// Output: auc: metric undefined: both classes must be present
}

func ExampleCurve_Points() {
	c, _ := auc.ROCMut([]auc.Sample[float64]{
		{Label: true, Score: 0.9},
		{Label: false, Score: 0.4},
		{Label: true, Score: 0.3},
	})
	for x, y := range c.Points() {
		fmt.Printf("(%.1f, %.1f)\n", x, y)
	}
	// Output:
	// (0.0, 0.0)
	// (0.0, 0.5)
	// (1.0, 0.5)
	// (1.0, 1.0)
}
