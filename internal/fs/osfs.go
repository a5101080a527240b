package fs

import "os"

type OSFS struct{}

// the concrete implementation of FS backed by the local OS filesystem.
// Access-time extraction is platform specific and lives in build-tagged files.

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:  path,
		Size:  st.Size(),
		MTime: st.ModTime(),
		ATime: atimeOf(st),
		IsDir: st.IsDir(),
	}, nil
}

func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Remove deletes a file or an empty directory.
func (o *OSFS) Remove(path string) error {
	return os.Remove(path)
}
