package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/resterr/internal/models"
)

func TestImportManagerGroups(t *testing.T) {
	im := NewImportManager()
	im.AddModelImports([]models.Import{
		{Path: "github.com/toyz/resterr/pkg/rest"},
		{Path: "fmt"},
		{Path: "example.com/shop/statuscodes", Alias: "codes"},
		{Path: "errors"},
		{Path: "github.com/getkin/kin-openapi/openapi3"},
		{Path: "errors"},
	})

	expected := "import (\n" +
		"\t\"errors\"\n" +
		"\t\"fmt\"\n" +
		"\n" +
		"\tcodes \"example.com/shop/statuscodes\"\n" +
		"\t\"github.com/getkin/kin-openapi/openapi3\"\n" +
		"\t\"github.com/toyz/resterr/pkg/rest\"\n" +
		")\n"
	assert.Equal(t, expected, im.GenerateImports())
}

func TestImportManagerSmallSets(t *testing.T) {
	im := NewImportManager()
	assert.Equal(t, "", im.GenerateImports())

	im.AddImport("net/http")
	assert.Equal(t, "import \"net/http\"\n", im.GenerateImports())

	im.AddImport("")
	assert.Equal(t, "import \"net/http\"\n", im.GenerateImports())

	onlyThirdParty := NewImportManager()
	onlyThirdParty.AddPackageImport("", "github.com/toyz/resterr/pkg/rest")
	onlyThirdParty.AddPackageImport("oa", "github.com/getkin/kin-openapi/openapi3")
	assert.Equal(t, "import (\n\toa \"github.com/getkin/kin-openapi/openapi3\"\n\t\"github.com/toyz/resterr/pkg/rest\"\n)\n", onlyThirdParty.GenerateImports())
}
