package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/cricbytes/cricbytes/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memeListBody struct {
	Data []struct {
		ID           string `json:"_id"`
		Type         string `json:"type"`
		Caption      string `json:"caption"`
		UploaderName string `json:"uploaderName"`
		Likes        int    `json:"likes"`
		ImageURL     string `json:"imageUrl"`
	} `json:"data"`
	Pagination struct {
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
		TotalMemes  int64 `json:"totalMemes"`
	} `json:"pagination"`
}

func smallPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func uploadMeme(t *testing.T, ts *testutil.TestServer, token, filename, caption string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("memeFile", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("caption", caption))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/memes/upload"), &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func likeMeme(t *testing.T, ts *testutil.TestServer, token, id string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/memes/"+id+"/like"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestMemeHandler_Upload(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithName("Uploader").BuildAndAuthenticate(t, ts)

	t.Run("successful upload", func(t *testing.T) {
		resp := uploadMeme(t, ts, token, "catch.png", "what a catch", smallPNG(t))
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			Success bool `json:"success"`
			Data    struct {
				ID           string `json:"_id"`
				Type         string `json:"type"`
				Caption      string `json:"caption"`
				UploaderName string `json:"uploaderName"`
				Likes        int    `json:"likes"`
				ImageURL     string `json:"imageUrl"`
			} `json:"data"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, "image", result.Data.Type)
		assert.Equal(t, "what a catch", result.Data.Caption)
		assert.Equal(t, "Uploader", result.Data.UploaderName)
		assert.Equal(t, 0, result.Data.Likes)
		assert.Contains(t, result.Data.ImageURL, "/uploads/")

		// The stored blob is served back through the media route
		fileResp, err := http.Get(ts.BaseURL() + result.Data.ImageURL)
		require.NoError(t, err)
		defer fileResp.Body.Close()
		assert.Equal(t, http.StatusOK, fileResp.StatusCode)
		assert.Equal(t, "image/png", fileResp.Header.Get("Content-Type"))
	})

	t.Run("rejects unauthenticated upload", func(t *testing.T) {
		resp := uploadMeme(t, ts, "", "catch.png", "", smallPNG(t))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Please authenticate")
	})

	t.Run("rejects unsupported file type", func(t *testing.T) {
		resp := uploadMeme(t, ts, token, "notes.txt", "", []byte("plain text"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects text content disguised as an image", func(t *testing.T) {
		resp := uploadMeme(t, ts, token, "sneaky.png", "", []byte("just some text"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects request without a file", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("caption", "no file here"))
		require.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/memes/upload"), &body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "No file uploaded")
	})
}

func TestMemeHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithName("Lister").Build(t, ts.DB.DB)
	for i := 0; i < 12; i++ {
		testutil.NewMemeBuilder().
			WithUploader(user).
			WithCaption(fmt.Sprintf("meme %d", i)).
			Build(t, ts.DB.DB)
	}

	t.Run("default page", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/memes"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result memeListBody
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Len(t, result.Data, 10)
		assert.Equal(t, 1, result.Pagination.CurrentPage)
		assert.Equal(t, 2, result.Pagination.TotalPages)
		assert.Equal(t, int64(12), result.Pagination.TotalMemes)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/memes?page=2"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result memeListBody
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Len(t, result.Data, 2)
		assert.Equal(t, 2, result.Pagination.CurrentPage)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/memes?page=99"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result memeListBody
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Empty(t, result.Data)
		assert.Equal(t, int64(12), result.Pagination.TotalMemes)
	})
}

func TestMemeHandler_Like(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	user, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	meme := testutil.NewMemeBuilder().WithUploader(user).Build(t, ts.DB.DB)

	t.Run("each like increments the counter", func(t *testing.T) {
		var result struct {
			ID    string `json:"_id"`
			Likes int    `json:"likes"`
		}

		first := likeMeme(t, ts, token, meme.ID.String())
		defer first.Body.Close()
		require.Equal(t, http.StatusOK, first.StatusCode)
		testutil.AssertJSONResponse(t, first, &result)
		assert.Equal(t, 1, result.Likes)

		second := likeMeme(t, ts, token, meme.ID.String())
		defer second.Body.Close()
		require.Equal(t, http.StatusOK, second.StatusCode)
		testutil.AssertJSONResponse(t, second, &result)
		assert.Equal(t, meme.ID.String(), result.ID)
		assert.Equal(t, 2, result.Likes)
	})

	t.Run("unknown meme", func(t *testing.T) {
		resp := likeMeme(t, ts, token, uuid.New().String())
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Meme not found")
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := likeMeme(t, ts, "", meme.ID.String())
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
