// Package catalog 对接外部香水数据 API，并提供本地目录实现。
//
// Client 封装 Fragella 风格的 REST 接口：x-api-key 鉴权、15 秒超时、
// 搜索结果经 transform 归一化成 core.Perfume。搜索结果可选地
// 缓存到 core.Store（默认 1 小时），避免重复外呼。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scentify/scentkit/core"
)

// DefaultEndpoint 香水搜索接口地址。
const DefaultEndpoint = "https://api.fragella.com/api/v1/fragrances"

// 搜索限制
const (
	minQueryLen   = 3
	maxSearchSize = 20
	cacheTTL      = 3600 // 秒
)

// Client 外部目录 API 客户端。
type Client struct {
	APIKey   string
	Endpoint string
	Cache    core.Store

	httpClient *http.Client
}

// NewClient 创建目录客户端。cache 可为 nil（不缓存）。
func NewClient(apiKey string, cache core.Store) *Client {
	return &Client{
		APIKey:   apiKey,
		Endpoint: DefaultEndpoint,
		Cache:    cache,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search 按关键词搜索香水。查询不足 3 个字符直接返回空；
// limit 超过 20 会被截到 20。外呼失败返回错误，404 视为无结果。
func (c *Client) Search(ctx context.Context, query string, limit int) ([]*core.Perfume, error) {
	if len(query) < minQueryLen {
		return nil, nil
	}
	if limit <= 0 || limit > maxSearchSize {
		limit = maxSearchSize
	}

	cacheKey := fmt.Sprintf("catalog:search:%s:%d", query, limit)
	if c.Cache != nil {
		if raw, err := c.Cache.Get(ctx, cacheKey); err == nil {
			var perfumes []*core.Perfume
			if json.Unmarshal(raw, &perfumes) == nil {
				return perfumes, nil
			}
		}
	}

	raw, err := c.call(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	perfumes := make([]*core.Perfume, 0, len(raw))
	for _, entry := range raw {
		perfumes = append(perfumes, transformAPIPerfume(entry))
	}

	if c.Cache != nil {
		if encoded, err := json.Marshal(perfumes); err == nil {
			// 缓存失败不影响搜索结果
			_ = c.Cache.Set(ctx, cacheKey, encoded, cacheTTL)
		}
	}
	return perfumes, nil
}

func (c *Client) call(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: bad endpoint: %v", err))
	}
	q := u.Query()
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
			fmt.Sprintf("catalog: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
			fmt.Sprintf("catalog: unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInternalError,
			fmt.Sprintf("catalog: bad response: %v", err))
	}
	return entries, nil
}

// bootstrapTerms 初始目录抓取用的品牌与香调关键词。
var bootstrapTerms = []string{
	"Dior", "Chanel", "Gucci", "Versace", "Tom Ford",
	"Prada", "Armani", "Yves Saint Laurent", "Givenchy", "Burberry",
	"Dolce Gabbana", "Calvin Klein", "Hugo Boss", "Valentino", "Hermes",
	"Rose", "Oud", "Vanilla", "Lavender", "Jasmine",
	"Citrus", "Sandalwood", "Amber", "Musk", "Bergamot",
}

// Bootstrap 通过一组热门关键词拉取初始目录，按 ID 去重，
// 攒够 maxSize（<=0 时默认 300）即停。单个关键词失败跳过不中断。
func (c *Client) Bootstrap(ctx context.Context, maxSize int) ([]*core.Perfume, error) {
	if maxSize <= 0 {
		maxSize = 300
	}
	seen := make(map[string]struct{})
	var perfumes []*core.Perfume
	for _, term := range bootstrapTerms {
		results, err := c.Search(ctx, term, maxSearchSize)
		if err != nil {
			continue
		}
		for _, p := range results {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			perfumes = append(perfumes, p)
		}
		if len(perfumes) >= maxSize {
			break
		}
	}
	return perfumes, nil
}
