package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/outline"
)

func main() {
	numTypes := flag.Int("types", 100, "Number of struct types to generate")
	numMethods := flag.Int("methods", 10, "Number of methods per type")
	regionSize := flag.Int("region", 10, "Types per // #region block, 0 for none")
	output := flag.String("output", "large_test.go", "Output file path")
	flag.Parse()

	if *numTypes < 1 {
		fmt.Fprintf(os.Stderr, "types must be at least 1\n")
		os.Exit(1)
	}

	src := generateSource(*numTypes, *numMethods, *regionSize)

	// Ensure directory exists
	dir := filepath.Dir(*output)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*output, []byte(src), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	// Parse it back, so a broken generator is noticed here and not in the panel
	items, err := outline.ParseSource(*output, []byte(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generated source does not parse: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated outline with %d items\n", len(model.AllItems(items)))
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(len(src))/(1024*1024))
}

func generateSource(numTypes, numMethods, regionSize int) string {
	var sb strings.Builder
	sb.WriteString("package generated\n\n")

	for i := 0; i < numTypes; i++ {
		name := generateTypeName(i)

		if regionSize > 0 && i%regionSize == 0 {
			fmt.Fprintf(&sb, "// #region Group%d\n\n", i/regionSize+1)
		}

		fmt.Fprintf(&sb, "// %s is generated\ntype %s struct {\n\tid    int\n\tName  string\n\tcount int\n}\n\n", name, name)
		fmt.Fprintf(&sb, "func New%s(id int) *%s {\n\treturn &%s{id: id}\n}\n\n", name, name, name)
		for m := 0; m < numMethods; m++ {
			fmt.Fprintf(&sb, "func (x *%s) %s(n int) int {\n\tx.count += n\n\treturn x.count\n}\n\n", name, generateMethodName(m))
		}

		if regionSize > 0 && (i%regionSize == regionSize-1 || i == numTypes-1) {
			sb.WriteString("// #endregion\n\n")
		}
	}

	return sb.String()
}

var typeCategories = []string{
	"Task", "Note", "Idea", "Bug", "Feature", "Enhancement",
	"Documentation", "Refactor", "Test", "Optimization",
	"Research", "Design", "Implementation", "Review",
}

func generateTypeName(index int) string {
	return fmt.Sprintf("%s%d", typeCategories[index%len(typeCategories)], index+1)
}

var methodVerbs = []string{
	"Add", "Remove", "Update", "Find", "Load", "Save", "Apply", "Reset",
}

func generateMethodName(index int) string {
	verb := methodVerbs[index%len(methodVerbs)]
	if round := index / len(methodVerbs); round > 0 {
		return fmt.Sprintf("%s%d", verb, round+1)
	}
	return verb
}
