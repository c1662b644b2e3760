package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"

	"github.com/x-xyz/artgallery/domain"
)

// ThrottledClient caps the number of in-flight calls against one rpc node
type ThrottledClient struct {
	client domain.EthClientRepo
	tokens chan int
}

func NewThrottledClient(client domain.EthClientRepo, n int) *ThrottledClient {
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		client: client,
		tokens: tokens,
	}
}

func (c *ThrottledClient) BlockNumber(ctx context.Context) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.client.BlockNumber(ctx)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.client.CallContract(ctx, msg, number)
}

// before blocks until a token is free or ctx is done
func (c *ThrottledClient) before(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case token := <-c.tokens:
		return token, nil
	}
}

func (c *ThrottledClient) after(token int) {
	c.tokens <- token
}
