package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScaffoldProject creates the register layout in the given directory:
// mercearia.toml, a sample products.toml and the journal directory. Files
// that already exist are left untouched. Returns the list of created paths.
func ScaffoldProject(dir string) ([]string, error) {
	var created []string
	def := Defaults()

	// mercearia.toml
	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	// products.toml
	productsPath := filepath.Join(dir, def.Catalog.Path)
	if _, err := os.Stat(productsPath); os.IsNotExist(err) {
		if writeErr := os.WriteFile(productsPath, []byte(productsTemplate), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", productsPath, writeErr)
		}
		created = append(created, productsPath)
	}

	// journal directory
	journalDir := filepath.Join(dir, def.Journal.Dir)
	if _, err := os.Stat(journalDir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(journalDir, 0755); mkErr != nil {
			return created, fmt.Errorf("scaffold: create %s: %w", journalDir, mkErr)
		}
		created = append(created, journalDir)
	}

	// .gitignore: keep the journal and log out of version control
	const gitignoreEntry = ".mercearia/"
	gitignorePath := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreEntry+"\n"), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	} else if err != nil {
		return created, fmt.Errorf("scaffold: read %s: %w", gitignorePath, err)
	} else if !strings.Contains(string(existing), gitignoreEntry) {
		content := string(existing)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content += "\n"
		}
		content += gitignoreEntry + "\n"
		if writeErr := os.WriteFile(gitignorePath, []byte(content), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	}

	return created, nil
}

const productsTemplate = `# products.toml: product catalog
# unit is UN, KG or L; price uses "." or "," as decimal separator.

[[products]]
id = "arroz-5kg"
name = "Arroz branco 5kg"
ean = "7891234567895"
unit = "UN"
price = "27.90"

[[products]]
id = "feijao-1kg"
name = "Feijão carioca 1kg"
ean = "7891234567901"
unit = "UN"
price = "8.49"

[[products]]
id = "banana"
name = "Banana prata"
unit = "KG"
price = "6,99"

[[products]]
id = "leite-1l"
name = "Leite integral 1L"
ean = "7891234567918"
unit = "L"
price = "5.29"
`
