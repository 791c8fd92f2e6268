package sdk

import (
	"context"
	"fmt"
)

// ListPets returns the adoption catalog
func (c *Client) ListPets(ctx context.Context) ([]*Pet, error) {
	var pets []*Pet
	if err := c.get(ctx, "/pets/getAllPets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// GetPet returns one catalog entry
func (c *Client) GetPet(ctx context.Context, petId int64) (*Pet, error) {
	var pet Pet
	if err := c.get(ctx, fmt.Sprintf("/pets/getPet/%d", petId), nil, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// AddPet creates a catalog entry (staff only)
func (c *Client) AddPet(ctx context.Context, req *AddPetRequest) (*Pet, error) {
	var pet Pet
	if err := c.post(ctx, "/pets/addPet", req, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// UpdatePet edits a catalog entry (staff only)
func (c *Client) UpdatePet(ctx context.Context, petId int64, req *UpdatePetRequest) (*Pet, error) {
	var pet Pet
	if err := c.put(ctx, fmt.Sprintf("/pets/updatePet/%d", petId), req, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// DeletePet removes a catalog entry (staff only)
func (c *Client) DeletePet(ctx context.Context, petId int64) error {
	return c.delete(ctx, fmt.Sprintf("/pets/deletePet/%d", petId), nil)
}
