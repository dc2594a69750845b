package langid

import "strings"

// modelOption describes one whisper.cpp model build. Language detection needs
// the multilingual builds, so the English-only variants are not listed.
type modelOption struct {
	Size      string
	FileName  string
	URL       string
	SizeLabel string
}

var modelCatalog = []modelOption{
	{
		Size:      "tiny",
		FileName:  "ggml-tiny.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
		SizeLabel: "~75 MB",
	},
	{
		Size:      "base",
		FileName:  "ggml-base.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		SizeLabel: "~142 MB",
	},
	{
		Size:      "small",
		FileName:  "ggml-small.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		SizeLabel: "~466 MB",
	},
	{
		Size:      "medium",
		FileName:  "ggml-medium.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
		SizeLabel: "~1.5 GB",
	},
	{
		Size:      "large",
		FileName:  "ggml-large-v3.bin",
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
		SizeLabel: "~2.9 GB",
	},
}

func modelBySize(size string) (modelOption, bool) {
	for _, model := range modelCatalog {
		if model.Size == size {
			return model, true
		}
	}
	return modelOption{}, false
}

// ModelSizes returns the accepted model size names, smallest first.
func ModelSizes() []string {
	sizes := make([]string, 0, len(modelCatalog))
	for _, model := range modelCatalog {
		sizes = append(sizes, model.Size)
	}
	return sizes
}

// ModelSizeList is the accepted sizes joined for error and usage messages.
func ModelSizeList() string {
	return strings.Join(ModelSizes(), ", ")
}
