package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalStorage(t *testing.T) {
	Convey("Given a LocalStorage", t, func() {
		tempDir := t.TempDir()
		ctx := context.Background()

		Convey("NewLocal", func() {
			Convey("When creating with valid path", func() {
				storage, err := NewLocal(tempDir)

				Convey("It should create successfully", func() {
					So(err, ShouldBeNil)
					So(storage, ShouldNotBeNil)
					So(storage.basePath, ShouldEqual, tempDir)
				})
			})

			Convey("When creating with non-existent path", func() {
				newPath := filepath.Join(tempDir, "new", "nested", "dir")
				storage, err := NewLocal(newPath)

				Convey("It should create directory and succeed", func() {
					So(err, ShouldBeNil)
					So(storage, ShouldNotBeNil)

					info, err := os.Stat(newPath)
					So(err, ShouldBeNil)
					So(info.IsDir(), ShouldBeTrue)
				})
			})
		})

		Convey("Create method", func() {
			storage, _ := NewLocal(tempDir)

			Convey("When writing a new file", func() {
				w, err := storage.Create("rsvp_202401010900.sql")
				So(err, ShouldBeNil)
				_, err = io.WriteString(w, "CREATE TABLE guests;")
				So(err, ShouldBeNil)
				So(w.Close(), ShouldBeNil)

				Convey("The content should be on disk", func() {
					content, err := os.ReadFile(filepath.Join(tempDir, "rsvp_202401010900.sql"))
					So(err, ShouldBeNil)
					So(string(content), ShouldEqual, "CREATE TABLE guests;")
				})
			})

			Convey("When the file already exists", func() {
				path := filepath.Join(tempDir, "rsvp_202401010900.sql")
				os.WriteFile(path, []byte("an older and longer dump"), 0644)

				w, err := storage.Create("rsvp_202401010900.sql")
				So(err, ShouldBeNil)
				io.WriteString(w, "new")
				w.Close()

				Convey("It should be truncated", func() {
					content, _ := os.ReadFile(path)
					So(string(content), ShouldEqual, "new")
				})
			})
		})

		Convey("List method", func() {
			storage, _ := NewLocal(tempDir)

			Convey("When directory has files", func() {
				os.WriteFile(filepath.Join(tempDir, "file1.sql"), []byte("test"), 0644)
				os.WriteFile(filepath.Join(tempDir, "file2.txt"), []byte("test!"), 0644)
				os.Mkdir(filepath.Join(tempDir, "subdir"), 0755)

				files, err := storage.List(ctx)

				Convey("It should list only regular files with metadata", func() {
					So(err, ShouldBeNil)
					So(len(files), ShouldEqual, 2)

					byName := map[string]int64{}
					for _, f := range files {
						byName[f.Name] = f.Size
						So(f.Path, ShouldEqual, filepath.Join(tempDir, f.Name))
						So(f.ModTime.IsZero(), ShouldBeFalse)
					}
					So(byName["file1.sql"], ShouldEqual, 4)
					So(byName["file2.txt"], ShouldEqual, 5)
					_, hasDir := byName["subdir"]
					So(hasDir, ShouldBeFalse)
				})
			})

			Convey("When directory contains a symlink", func() {
				target := filepath.Join(tempDir, "real.sql")
				os.WriteFile(target, []byte("x"), 0644)
				So(os.Symlink(target, filepath.Join(tempDir, "link.sql")), ShouldBeNil)

				files, err := storage.List(ctx)

				Convey("It should skip the link", func() {
					So(err, ShouldBeNil)
					So(len(files), ShouldEqual, 1)
					So(files[0].Name, ShouldEqual, "real.sql")
				})
			})

			Convey("When directory is empty", func() {
				emptyDir := filepath.Join(tempDir, "empty")
				os.Mkdir(emptyDir, 0755)
				storage, _ := NewLocal(emptyDir)

				files, err := storage.List(ctx)

				Convey("It should return empty list", func() {
					So(err, ShouldBeNil)
					So(len(files), ShouldEqual, 0)
				})
			})
		})

		Convey("Stat method", func() {
			storage, _ := NewLocal(tempDir)
			path := filepath.Join(tempDir, "dump.sql")
			os.WriteFile(path, []byte("12345"), 0644)
			mtime := time.Now().Add(-5 * time.Hour).Truncate(time.Second)
			os.Chtimes(path, mtime, mtime)

			file, err := storage.Stat(ctx, "dump.sql")

			So(err, ShouldBeNil)
			So(file.Size, ShouldEqual, 5)
			So(file.ModTime.Equal(mtime), ShouldBeTrue)

			_, err = storage.Stat(ctx, "missing.sql")
			So(err, ShouldNotBeNil)
		})

		Convey("Delete method", func() {
			storage, _ := NewLocal(tempDir)

			Convey("When deleting existing file", func() {
				testFile := "delete_me.txt"
				os.WriteFile(filepath.Join(tempDir, testFile), []byte("test"), 0644)

				err := storage.Delete(ctx, testFile)

				Convey("It should delete successfully", func() {
					So(err, ShouldBeNil)

					_, err := os.Stat(filepath.Join(tempDir, testFile))
					So(os.IsNotExist(err), ShouldBeTrue)
				})
			})

			Convey("When deleting non-existent file", func() {
				err := storage.Delete(ctx, "nonexistent.txt")

				Convey("It should return error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "failed to delete file")
				})
			})
		})

		Convey("GetPath method", func() {
			storage, _ := NewLocal(tempDir)
			So(storage.GetPath("test.txt"), ShouldEqual, filepath.Join(tempDir, "test.txt"))
		})
	})
}
