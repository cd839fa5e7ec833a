package domain

type Compressor interface {
	Compress(sourcePath, destPath string) error
	Extension() string
}
