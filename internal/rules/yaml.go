package rules

// yamlBrand mirrors one entry of a brand table file.
type yamlBrand struct {
	Scheme           string    `yaml:"scheme"`
	Brand            string    `yaml:"brand"`
	Type             string    `yaml:"type,omitempty"`
	Countries        []string  `yaml:"countries,omitempty"`
	Bin              string    `yaml:"bin"`
	Full             string    `yaml:"full,omitempty"`
	CVV              string    `yaml:"cvv,omitempty"`
	Lengths          []int     `yaml:"lengths,omitempty"`
	Luhn             *bool     `yaml:"luhn,omitempty"`
	CVVLength        int       `yaml:"cvvLength,omitempty"`
	Bins             []yamlBin `yaml:"bins,omitempty"`
	Examples         []string  `yaml:"examples,omitempty"`
	NegativeExamples []string  `yaml:"negative_examples,omitempty"`
}

type yamlBin struct {
	Bin       string   `yaml:"bin"`
	Type      string   `yaml:"type,omitempty"`
	Category  string   `yaml:"category,omitempty"`
	Issuer    string   `yaml:"issuer,omitempty"`
	Countries []string `yaml:"countries,omitempty"`
}

// yamlTableFile is the top-level structure of a brand table file.
type yamlTableFile struct {
	Brands []yamlBrand `yaml:"brands"`
}
