package catset

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultBreeds is the built-in search-term list covering recognized breeds
// plus aliases and pattern variants for broader crawl coverage. Folder names
// are derived from these via Slugify.
var DefaultBreeds = []string{
	"Abyssinian cat", "Aegean cat", "American Bobtail cat", "American Curl cat",
	"American Ringtail cat", "American Shorthair cat", "American Wirehair cat",
	"Arabian Mau cat", "Asian cat", "Asian Semi-longhair cat", "Australian Mist cat",
	"Balinese cat", "Bambino cat", "Bengal cat", "Birman cat", "Bombay cat",
	"Brazilian Shorthair cat", "British Longhair cat", "British Shorthair cat",
	"Burmese cat", "Burmilla cat", "California Spangled cat", "Chantilly Tiffany cat",
	"Chartreux cat", "Chausie cat", "Cheetoh cat", "Colorpoint Shorthair cat",
	"Cornish Rex cat", "Cymric cat", "Cyprus cat", "Devon Rex cat", "Donskoy cat",
	"Dragon Li cat", "Dwelf cat", "Egyptian Mau cat", "European Burmese cat",
	"European Shorthair cat", "Exotic Shorthair cat", "Foldex cat", "German Rex cat",
	"Havana Brown cat", "Highlander cat", "Himalayan cat", "Japanese Bobtail cat",
	"Javanese cat", "Kanaani cat", "Khao Manee cat", "Korat cat",
	"Korean Bobtail cat", "Korn Ja cat", "Kurilian Bobtail cat", "LaPerm cat",
	"Lykoi cat", "Maine Coon cat", "Manx cat", "Mekong Bobtail cat", "Minskin cat",
	"Napoleon cat", "Neva Masquerade cat", "Munchkin cat", "Nebelung cat",
	"Norwegian Forest cat", "Ocicat cat", "Ojos Azules cat", "Oriental Bicolor cat",
	"Oriental Longhair cat", "Oriental Shorthair cat", "Persian cat",
	"Peterbald cat", "Pixie-bob cat", "Ragamuffin cat", "Ragdoll cat",
	"Russian Blue cat", "Sam Sawet cat", "Savannah cat", "Scottish Fold cat",
	"Scottish Straight cat", "Selkirk Rex cat", "Serengeti cat", "Serrade Petit cat",
	"Siamese cat", "Siberian cat", "Singapura cat", "Snowshoe cat", "Sokoke cat",
	"Somali cat", "Sphynx cat", "Suphalak cat", "Thai cat", "Tonkinese cat",
	"Toyger cat", "Toybob cat", "Turkish Angora cat", "Turkish Van cat",
	"Ukrainian Levkoy cat", "York Chocolate cat", "Ural Rex cat",
	"American Longhair cat", "Bicolor cat breed", "Calico cat breed",
	"Tabby cat breed", "Tuxedo cat breed",
	"Chinese Li Hua cat", "Malayan cat", "Mandarin cat", "Mandalay cat",
	"Oriental Foreign White cat", "Black Persian cat", "Chinchilla Persian cat",
	"Teacup Persian cat", "Exotic Longhair cat", "British Blue cat",
	"German Longhair cat", "Korat Si-Sawat cat", "Mokema cat", "Skookum cat",
	"Australian Tiffanie cat", "Burmilla Longhair cat", "Oregon Rex cat",
	"Tasman Manx cat", "Tennessee Rex cat", "Thuringian Forest cat",
	"Asian Smoke cat", "Asian Tabby cat", "Asian Self cat", "Bombay European cat",
	"Caracal domestic hybrid cat", "Chaussie domestic hybrid cat", "Cheetoh hybrid cat",
	"Jungle Curl cat", "Highland Lynx cat", "Desert Lynx cat", "Lambkin cat",
	"Mandalay Burmese cat", "Minuet cat", "Napoleon Minuet cat", "Ojos Azules longhair cat",
	"Pixiebob Longhair cat", "Rex Longhair cat", "Rex Shorthair cat",
	"Snow Bengal cat", "Seal Lynx Point Siamese cat", "Blue Point Siamese cat",
	"Lilac Point Siamese cat", "Chocolate Point Siamese cat",
	"Colorpoint Persian cat", "Himalayan Persian cat",
	"Tiffanie cat", "Tiffany Chantilly cat", "Bali cat", "Balinese Javanese cat",
	"American Keuda cat", "American Polydactyl cat", "American Poodle cat",
	"Arabian Mau Longhair cat", "Asian Longhair cat", "Basilicata cat",
	"Brazilian Longhair cat", "British Colourpoint cat", "Canadian Sphynx cat",
	"Don Sphynx cat", "Elf cat", "Minskin Dwelf cat",
	"Peterbald hairless cat", "Burmilla Tiffanie cat", "Euro-Burmese cat",
	"Istanbul cat", "Mekong Bobtail Longhair cat", "Kuril Bobtail Longhair cat",
	"Japanese Bobtail Longhair cat", "Korean Bobtail Longhair cat",
	"Karelian Bobtail cat", "American Lynx cat", "European Maine Coon cat",
	"Polish cat breed", "Thai Lilac cat", "Thai Blue Point cat", "Thai Seal Point cat",
	"Ural Rex Longhair cat", "Ussuri cat", "Van kedisi cat", "Ankara kedisi cat",
	"Aphrodite Giant cat", "Cyprus Aphrodite cat", "Bristol cat", "California Rex cat",
	"Kanaani German cat", "Lykoi Shorthair cat", "Mandalay New Zealand cat",
	"Me-kong Bobtail cat", "Owyhee Bob cat", "Pantherette cat", "Raas cat",
	"Safari cat", "Savannah F1 cat", "Savannah F2 cat", "Savannah F3 cat",
	"Serengeti hybrid cat", "Sokoke Forest cat", "Suphalak Thailand cat",
	"Thai Korat cat", "Toyger striped cat", "Turkish Van Vankedisi cat",
	"Turkish Angora Ankara kedisi cat", "York Chocolate Longhair cat",
	"Chausie hybrid cat", "Asian Burmilla cat", "Khaomanee cat", "Thai Siamese cat",
	"Ariègeois cat", "Brazilian Rex cat", "Snowshoe Longhair cat", "German Rex Longhair cat",
	"Highlander Shorthair cat", "Highlander Longhair cat", "American Curl Longhair cat",
	"American Curl Shorthair cat", "Siamese Modern cat", "Siamese Traditional cat",
	"Applehead Siamese cat", "Old-style Siamese cat", "Oriental Siamese cat",
	"Ceylon cat", "Mau Egyptian cat", "Havana Brown oriental cat",
	"Burmese European cat", "Burmese American cat", "British Golden Shaded cat",
	"British Silver Shaded cat", "British Black Golden Shaded cat",
	"Maine Coon polydactyl cat", "Ragdoll mitted cat", "Ragdoll bicolor cat",
	"Ragdoll colorpoint cat", "Ragamuffin longhair cat", "Manx longhair Cymric cat",
	"Manx rumpy cat", "Manx stumpy cat", "Siberian Neva Masquerade cat",
	"Norwegian Forest longhair cat", "Ocicat spotted cat", "Ocicat classic tabby cat",
	"Ocicat ticked tabby cat", "Russian Blue Archangel cat",
	"Khao Manee Diamond Eye cat", "Korat Si-Sawat Blue cat",
	"Bengal snow lynx point cat", "Bengal marble cat", "Bengal spotted cat",
	"Persian doll face cat", "Persian flat face cat",
	"Selkirk Rex Longhair cat", "Selkirk Rex Shorthair cat",
	"Scottish Fold Longhair cat", "Scottish Fold Shorthair cat",
	"Scottish Straight Longhair cat", "Scottish Straight Shorthair cat",
	"Oriental Foreign White Longhair cat", "Oriental Foreign White Shorthair cat",
	"Balinese modern cat", "Javanese longhair cat", "Japanese Bobtail Mi-ke cat",
	"Japanese Bobtail calico cat", "Turkish Van swimming cat",
	"Himalayan colorpoint Persian cat", "Exotic Shorthair flat face cat",
	"Exotic Longhair Persian type cat",
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a breed search term into a filesystem-safe folder name:
// lowercase, non-alphanumeric runs collapsed to single underscores.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

var (
	breedNameOnce   sync.Once
	breedNameBySlug map[string]string
)

// BreedName resolves a folder slug back to its display name from
// DefaultBreeds. Unknown slugs come back unchanged, so ad-hoc folders still
// get a usable label.
func BreedName(slug string) string {
	breedNameOnce.Do(func() {
		breedNameBySlug = make(map[string]string, len(DefaultBreeds))
		for _, b := range DefaultBreeds {
			breedNameBySlug[Slugify(b)] = b
		}
	})
	if name, ok := breedNameBySlug[slug]; ok {
		return name
	}
	return slug
}

// LoadBreeds reads a breed list from a YAML file of the form:
//
//	breeds:
//	  - Maine Coon cat
//	  - Siberian cat
func LoadBreeds(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read breeds file: %w", err)
	}
	var doc struct {
		Breeds []string `yaml:"breeds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse breeds file: %w", err)
	}
	if len(doc.Breeds) == 0 {
		return nil, fmt.Errorf("breeds file %s lists no breeds", path)
	}
	return doc.Breeds, nil
}
