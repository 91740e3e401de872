package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RemoteStore talks to the media transformation service over HTTP.
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemoteStore() *RemoteStore {
	return &RemoteStore{
		baseURL: viper.GetString("media.endpoint"),
		apiKey:  viper.GetString("media.api_key"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (v *RemoteStore) Store(data []byte, contentType string) (Object, error) {
	var object Object

	payload, err := json.Marshal(map[string]any{
		"data":         base64.StdEncoding.EncodeToString(data),
		"content_type": contentType,
	})
	if err != nil {
		return object, err
	}

	request, err := http.NewRequest(http.MethodPost, v.baseURL+"/objects", bytes.NewReader(payload))
	if err != nil {
		return object, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+v.apiKey)

	response, err := v.client.Do(request)
	if err != nil {
		return object, fmt.Errorf("unable to store media object: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return object, fmt.Errorf("media store responded with status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(&object); err != nil {
		return object, fmt.Errorf("unable to decode media store response: %v", err)
	}

	return object, nil
}

func (v *RemoteStore) Release(objectID string) error {
	request, err := http.NewRequest(http.MethodDelete, v.baseURL+"/objects/"+objectID, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+v.apiKey)

	response, err := v.client.Do(request)
	if err != nil {
		return fmt.Errorf("unable to release media object: %v", err)
	}
	defer response.Body.Close()

	// already-released objects are not an error; release is retried by cascades
	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media store responded with status %d", response.StatusCode)
	}

	return nil
}
