package sports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SlpAus/minigame-portal-backend/internal/platform/config"
)

// Match 是返回给前端的单场比赛数据，只保留展示需要的字段
type Match struct {
	League    string `json:"league"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Status    string `json:"status"`
	Kickoff   string `json:"kickoff"`
}

// fixturesResponse 对应上游API的返回结构
type fixturesResponse struct {
	Matches []struct {
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
		HomeTeam struct {
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name string `json:"name"`
		} `json:"awayTeam"`
		Score struct {
			FullTime struct {
				Home int `json:"home"`
				Away int `json:"away"`
			} `json:"fullTime"`
		} `json:"score"`
		Status  string `json:"status"`
		UTCDate string `json:"utcDate"`
	} `json:"matches"`
}

// Fetcher 是比赛数据来源的抽象
type Fetcher interface {
	FixturesByDate(ctx context.Context, date string) ([]Match, error)
}

// Client 是第三方体育数据API的客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建体育数据客户端
func NewClient(cfg config.SportsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FixturesByDate 拉取指定日期(YYYY-MM-DD)的比赛并整理成精简结构
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]Match, error) {
	endpoint := fmt.Sprintf("%s/matches?date=%s", c.baseURL, url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求体育数据失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("体育数据API返回状态 %d", resp.StatusCode)
	}

	var raw fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("解析体育数据失败: %w", err)
	}

	matches := make([]Match, 0, len(raw.Matches))
	for _, m := range raw.Matches {
		matches = append(matches, Match{
			League:    m.Competition.Name,
			HomeTeam:  m.HomeTeam.Name,
			AwayTeam:  m.AwayTeam.Name,
			HomeScore: m.Score.FullTime.Home,
			AwayScore: m.Score.FullTime.Away,
			Status:    m.Status,
			Kickoff:   m.UTCDate,
		})
	}
	return matches, nil
}
