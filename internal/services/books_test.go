package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

func testAPIConfig(baseURL string) shared.APIConfig {
	return shared.APIConfig{
		BaseURL:           baseURL,
		BooksPath:         "/books/{user_id}",
		AddBookPath:       "/addbook",
		UpdateBookPath:    "/updatebook",
		DeleteBookPath:    "/deletebook",
		UploadPath:        "/upload",
		UserPath:          "/user/{user_id}",
		UpdateUserPath:    "/updateuser",
		RequestsPerSecond: 100,
	}
}

func testBook() models.Book {
	return models.Book{
		BookID:          "b-1",
		UserID:          "user-123",
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		Publisher:       "Ace",
		PublicationYear: "1965",
		Genres:          []string{"Science Fiction"},
		Summary:         "Arrakis, the desert planet.",
		CoverImage:      "https://images.example.com/dune.png",
		NumberOfPages:   "412",
		Language:        "English",
	}
}

func TestDecodeEnvelope(t *testing.T) {
	t.Run("String Wrapped Body", func(t *testing.T) {
		inner, _ := json.Marshal([]models.Book{testBook()})
		outer, _ := json.Marshal(map[string]string{"body": string(inner)})

		var books []models.Book
		if err := decodeEnvelope(outer, &books); err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}
		if len(books) != 1 || books[0].Title != "Dune" {
			t.Errorf("unexpected decoded books: %+v", books)
		}
	})

	t.Run("Direct Payload", func(t *testing.T) {
		data, _ := json.Marshal([]models.Book{testBook()})

		var books []models.Book
		if err := decodeEnvelope(data, &books); err != nil {
			t.Fatalf("failed to decode direct payload: %v", err)
		}
		if len(books) != 1 {
			t.Errorf("expected one book, got %d", len(books))
		}
	})

	t.Run("Raw JSON Body", func(t *testing.T) {
		data := []byte(`{"body": {"message": "ok"}}`)

		var payload struct {
			Message string `json:"message"`
		}
		if err := decodeEnvelope(data, &payload); err != nil {
			t.Fatalf("failed to decode raw body: %v", err)
		}
		if payload.Message != "ok" {
			t.Errorf("expected message ok, got %q", payload.Message)
		}
	})
}

func TestBookService(t *testing.T) {
	t.Run("ListForUser", func(t *testing.T) {
		t.Run("Returns Books", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/books/user-123" {
					t.Errorf("expected path /books/user-123, got %s", r.URL.Path)
				}

				inner, _ := json.Marshal([]models.Book{testBook()})
				json.NewEncoder(w).Encode(map[string]string{"body": string(inner)})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			books, err := srv.ListForUser(context.Background(), "user-123")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(books) != 1 || books[0].BookID != "b-1" {
				t.Errorf("unexpected books: %+v", books)
			}
		})

		t.Run("Empty Catalogue Is Not An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			books, err := srv.ListForUser(context.Background(), "user-123")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if books == nil || len(books) != 0 {
				t.Errorf("expected empty slice, got %+v", books)
			}
		})

		t.Run("Server Error Carries Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"message": "No books found for this user."})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			_, err := srv.ListForUser(context.Background(), "user-123")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrFetch) {
				t.Errorf("expected ErrFetch, got %v", err)
			}
			if !strings.Contains(err.Error(), "No books found for this user.") {
				t.Errorf("expected server message in error, got %v", err)
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Posts Record", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/addbook" {
					t.Errorf("expected POST /addbook, got %s %s", r.Method, r.URL.Path)
				}

				var book models.Book
				if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if book.BookID == "" {
					t.Error("book_id must be set before the record reaches the server")
				}

				json.NewEncoder(w).Encode(map[string]string{"message": "Book added successfully."})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			msg, err := srv.Create(context.Background(), testBook())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg != "Book added successfully." {
				t.Errorf("unexpected message %q", msg)
			}
		})

		t.Run("Rejects Invalid Record Locally", func(t *testing.T) {
			srv := NewBookService(testAPIConfig("http://unreachable.invalid"), nil)

			book := testBook()
			book.Title = ""
			_, err := srv.Create(context.Background(), book)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, shared.ErrMutation) {
				t.Errorf("expected ErrMutation, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("Posts Full Record", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/updatebook" {
					t.Errorf("expected POST /updatebook, got %s %s", r.Method, r.URL.Path)
				}

				var book models.Book
				if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if book.BookID != "b-1" || book.Title != "Dune Messiah" {
					t.Errorf("unexpected record: %+v", book)
				}

				json.NewEncoder(w).Encode(map[string]string{"message": "Book updated successfully."})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			book := testBook()
			book.Title = "Dune Messiah"

			msg, err := srv.Update(context.Background(), book)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg != "Book updated successfully." {
				t.Errorf("unexpected message %q", msg)
			}
		})

		t.Run("Rejects Invalid Record Locally", func(t *testing.T) {
			srv := NewBookService(testAPIConfig("http://unreachable.invalid"), nil)

			book := testBook()
			book.Author = ""
			if _, err := srv.Update(context.Background(), book); !errors.Is(err, shared.ErrMutation) {
				t.Errorf("expected ErrMutation, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Single Request Removes Record And Image", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/deletebook" {
					t.Errorf("expected DELETE /deletebook, got %s %s", r.Method, r.URL.Path)
				}

				var req DeleteRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.BookID != "b-1" || req.CoverImage == "" {
					t.Errorf("expected record and image in one request, got %+v", req)
				}

				json.NewEncoder(w).Encode(map[string]string{"message": "Book deleted successfully."})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			msg, err := srv.Delete(context.Background(), DeleteRequest{
				BookID:     "b-1",
				CoverImage: "https://images.example.com/dune.png",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg != "Book deleted successfully." {
				t.Errorf("unexpected message %q", msg)
			}
		})

		t.Run("Failure Surfaces As Mutation Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"message": "Could not delete book."})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			_, err := srv.Delete(context.Background(), DeleteRequest{BookID: "b-1"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrMutation) {
				t.Errorf("expected ErrMutation, got %v", err)
			}
		})

		t.Run("Missing ID Rejected Locally", func(t *testing.T) {
			srv := NewBookService(testAPIConfig("http://unreachable.invalid"), nil)

			if _, err := srv.Delete(context.Background(), DeleteRequest{}); err == nil {
				t.Error("expected error for missing book_id")
			}
		})
	})

	t.Run("UploadImage", func(t *testing.T) {
		t.Run("Resolves To URL", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req uploadRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.FileName != "dune.png" || req.FileContent == "" {
					t.Errorf("unexpected upload payload: %+v", req)
				}

				inner, _ := json.Marshal(map[string]string{"url": "https://images.example.com/dune.png"})
				json.NewEncoder(w).Encode(map[string]string{"body": string(inner)})
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			url, err := srv.UploadImage(context.Background(), "dune.png", "aGVsbG8=")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if url != "https://images.example.com/dune.png" {
				t.Errorf("unexpected url %q", url)
			}
		})

		t.Run("Failure Surfaces As Upload Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			_, err := srv.UploadImage(context.Background(), "dune.png", "aGVsbG8=")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrUpload) {
				t.Errorf("expected ErrUpload, got %v", err)
			}
		})

		t.Run("Missing URL In Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			srv := NewBookService(testAPIConfig(server.URL), nil)
			if _, err := srv.UploadImage(context.Background(), "dune.png", "aGVsbG8="); err == nil {
				t.Error("expected error for missing url")
			}
		})
	})

	t.Run("Round Trip", func(t *testing.T) {
		// Create then list against a stateful stub: the listed record must
		// equal the created one, exactly once.
		var stored []models.Book
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodPost && r.URL.Path == "/addbook":
				var book models.Book
				json.NewDecoder(r.Body).Decode(&book)
				stored = append(stored, book)
				json.NewEncoder(w).Encode(map[string]string{"message": "Book added successfully."})
			case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/books/"):
				inner, _ := json.Marshal(stored)
				json.NewEncoder(w).Encode(map[string]string{"body": string(inner)})
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		srv := NewBookService(testAPIConfig(server.URL), nil)
		book := testBook()

		if _, err := srv.Create(context.Background(), book); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		books, err := srv.ListForUser(context.Background(), book.UserID)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(books) != 1 {
			t.Fatalf("expected exactly one book, got %d", len(books))
		}

		got, _ := json.Marshal(books[0])
		want, _ := json.Marshal(book)
		if string(got) != string(want) {
			t.Errorf("listed record differs from created one:\ngot  %s\nwant %s", got, want)
		}
	})

	t.Run("User Profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/user/user-123":
				json.NewEncoder(w).Encode(models.UserProfile{
					UserID: "user-123",
					Name:   "Jane Doe",
					Email:  "jane@example.com",
					Phone:  "5551234567",
				})
			case r.Method == http.MethodPost && r.URL.Path == "/updateuser":
				json.NewEncoder(w).Encode(map[string]string{"message": "User updated successfully."})
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		srv := NewBookService(testAPIConfig(server.URL), nil)

		profile, err := srv.FetchUser(context.Background(), "user-123")
		if err != nil {
			t.Fatalf("failed to fetch user: %v", err)
		}
		if profile.Name != "Jane Doe" {
			t.Errorf("unexpected profile: %+v", profile)
		}

		profile.Address = "1 Arrakeen Way"
		msg, err := srv.UpdateUser(context.Background(), *profile)
		if err != nil {
			t.Fatalf("failed to update user: %v", err)
		}
		if msg != "User updated successfully." {
			t.Errorf("unexpected message %q", msg)
		}
	})
}
