package codegen

import "github.com/Manu343726/isagen/pkg/utils"

// A generated source file
type Artifact struct {
	// File name, relative to the output directory
	Name string
	// Language of the generated code
	Language utils.Language
	Content  []byte
}
