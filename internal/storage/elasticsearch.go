// internal/storage/elasticsearch.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/models"
)

// ESResultIndex writes scoring results into Elasticsearch so the reporting
// service can query score history without re-deriving engine logic.
type ESResultIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewESResultIndex(client *elasticsearch.Client, index string) *ESResultIndex {
	return &ESResultIndex{client: client, index: index}
}

// IndexResult stores one scoring result document keyed by calculation id.
func (i *ESResultIndex) IndexResult(ctx context.Context, result *models.ScoringResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return errors.NewResultIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: result.CalculationID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return errors.NewResultIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewResultIndexFailedError(fmt.Errorf("index %s: %s", i.index, res.Status()))
	}
	return nil
}
