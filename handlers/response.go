package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecodrive/repository"
)

// Link is a hypermedia reference.
type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

// Item is a representation with its _links merged into the object.
type Item[R any] struct {
	Data  R
	Links Links
}

func (i Item[R]) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(i.Data)
	if err != nil {
		return nil, err
	}
	links, err := json.Marshal(i.Links)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("hypermedia item must be a JSON object, got %q", body)
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(links) + 12)
	buf.Write(body[:len(body)-1])
	if len(body) > 2 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"_links":`)
	buf.Write(links)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// Collection is a paged list of items keyed by their relation name.
type Collection[R any] struct {
	Embedded map[string][]Item[R] `json:"_embedded"`
	Links    Links                `json:"_links"`
	Page     PageMetadata         `json:"page"`
}

// baseURL is the scheme and host the client used to reach us.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// linker builds links for one resource collection.
type linker struct {
	rel string
}

func (l linker) collectionHref(c *gin.Context) string {
	return baseURL(c) + "/" + l.rel
}

func (l linker) itemHref(c *gin.Context, id uint) string {
	return l.collectionHref(c) + "/" + strconv.FormatUint(uint64(id), 10)
}

func (l linker) pageHref(c *gin.Context, page, size int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return l.collectionHref(c) + "?" + q.Encode()
}

func toItem[R resource](c *gin.Context, l linker, r R) Item[R] {
	return Item[R]{
		Data: r,
		Links: Links{
			"self": {Href: l.itemHref(c, r.ResourceID())},
			l.rel:  {Href: l.collectionHref(c)},
		},
	}
}

func toItems[R resource](c *gin.Context, l linker, rs []R) []Item[R] {
	out := make([]Item[R], len(rs))
	for i, r := range rs {
		out[i] = toItem(c, l, r)
	}
	return out
}

func toCollection[R resource](c *gin.Context, l linker, p repository.Page[R]) Collection[R] {
	links := Links{"self": {Href: l.pageHref(c, p.Number, p.Size)}}
	if p.Number+1 < p.TotalPages {
		links["next"] = Link{Href: l.pageHref(c, p.Number+1, p.Size)}
	}
	if p.Number > 0 {
		links["prev"] = Link{Href: l.pageHref(c, p.Number-1, p.Size)}
	}
	return Collection[R]{
		Embedded: map[string][]Item[R]{l.rel: toItems(c, l, p.Items)},
		Links:    links,
		Page: PageMetadata{
			Size:          p.Size,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages,
			Number:        p.Number,
		},
	}
}
