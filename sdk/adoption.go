package sdk

import (
	"context"
	"fmt"
)

// ApplyAdoption files an adoption request for a pet
func (c *Client) ApplyAdoption(ctx context.Context, petId int64, purpose string) (*AdoptionRequest, error) {
	req := &ApplyAdoptionRequest{PetId: petId, Purpose: purpose}

	var adoption AdoptionRequest
	if err := c.post(ctx, "/process/adoption", req, &adoption); err != nil {
		return nil, err
	}
	return &adoption, nil
}

// MyAdoptions returns the caller's adoption requests
func (c *Client) MyAdoptions(ctx context.Context) ([]*AdoptionRequest, error) {
	var reqs []*AdoptionRequest
	if err := c.get(ctx, "/process/adoption/me", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListAdoptions returns every adoption request with applicant detail (staff only)
func (c *Client) ListAdoptions(ctx context.Context) ([]*AdoptionWithDetail, error) {
	var results []*AdoptionWithDetail
	if err := c.get(ctx, "/process/getAllAdoption", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ApproveAdoption approves a pending request (staff only)
func (c *Client) ApproveAdoption(ctx context.Context, id int64) (*AdoptionRequest, error) {
	var adoption AdoptionRequest
	if err := c.put(ctx, fmt.Sprintf("/adoption/%d/adoptionApproved", id), nil, &adoption); err != nil {
		return nil, err
	}
	return &adoption, nil
}

// RejectAdoption rejects a pending request (staff only)
func (c *Client) RejectAdoption(ctx context.Context, id int64) (*AdoptionRequest, error) {
	var adoption AdoptionRequest
	if err := c.put(ctx, fmt.Sprintf("/adoption/%d/adoptionRejected", id), nil, &adoption); err != nil {
		return nil, err
	}
	return &adoption, nil
}
