package config

// File is the on-disk shape of plate.yaml and plate.toml. Unset fields keep
// their defaults.
type File struct {
	Renderer            *string  `yaml:"renderer" toml:"renderer"`
	RendererArgs        []string `yaml:"rendererArgs" toml:"rendererArgs"`
	InlineArgs          []string `yaml:"inlineArgs" toml:"inlineArgs"`
	OutDir              *string  `yaml:"outDir" toml:"outDir"`
	ImagesDir           *string  `yaml:"imagesDir" toml:"imagesDir"`
	ImagePath           *string  `yaml:"imagePath" toml:"imagePath"`
	Prefix              *string  `yaml:"prefix" toml:"prefix"`
	Timeout             *string  `yaml:"timeout" toml:"timeout"`
	TolerateClosedInput *bool    `yaml:"tolerateClosedInput" toml:"tolerateClosedInput"`
	Parallelism         *int     `yaml:"parallelism" toml:"parallelism"`
	Format              *string  `yaml:"format" toml:"format"`
}
