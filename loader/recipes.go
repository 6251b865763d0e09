package loader

import (
	"fmt"
	"strconv"

	"go.flow.arcalot.io/subfactory/depgraph"
	"go.flow.arcalot.io/subfactory/internal/yaml"
	"go.uber.org/multierr"
)

// Amount is an item with the quantity a recipe consumes or produces. Quantities are kept for reference only; the
// dependency graph does not model ratios.
type Amount struct {
	Item   depgraph.Item `json:"name" yaml:"name"`
	Amount float64       `json:"amount" yaml:"amount"`
}

// Recipe is a single entry of a recipe database. A recipe without results produces the item it is named after.
type Recipe struct {
	Name        string   `json:"name" yaml:"name"`
	Ingredients []Amount `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Results     []Amount `json:"results,omitempty" yaml:"results,omitempty"`
}

// Products returns the items the recipe produces.
func (r Recipe) Products() []depgraph.Item {
	if len(r.Results) == 0 {
		return []depgraph.Item{depgraph.Item(r.Name)}
	}
	result := make([]depgraph.Item, len(r.Results))
	for i, amount := range r.Results {
		result[i] = amount.Item
	}
	return result
}

// ParseRecipes decodes a recipe database and builds the dependency graph from it.
func ParseRecipes(data []byte, filename string, options Options) (depgraph.DependencyGraph, error) {
	recipes, err := DecodeRecipes(data, filename)
	if err != nil {
		return nil, err
	}
	return FromRecipeList(recipes, options)
}

// FromRecipeList builds the dependency graph from decoded recipes. Recipes producing the same item are merged.
func FromRecipeList(recipes []Recipe, options Options) (depgraph.DependencyGraph, error) {
	b, err := options.builder()
	if err != nil {
		return nil, err
	}
	for _, recipe := range recipes {
		ingredients := make([]depgraph.Item, len(recipe.Ingredients))
		for i, ingredient := range recipe.Ingredients {
			ingredients[i] = ingredient.Item
		}
		for _, product := range recipe.Products() {
			if err := b.AddRecipe(product, ingredients...); err != nil {
				return nil, fmt.Errorf("failed to add recipe %s (%w)", recipe.Name, err)
			}
		}
	}
	return b.Build()
}

// DecodeRecipes decodes a YAML or JSON list of recipes. Ingredients and results are lists of item names or of
// maps with a name and an optional amount, for example:
//
//	[{name: iron-gear-wheel, ingredients: [{name: iron-plate, amount: 2}]},
//	 {name: advanced-oil-processing, ingredients: [crude-oil, water], results: [heavy-oil, petroleum-gas]}]
//
// Every invalid entry is reported, not just the first one.
func DecodeRecipes(data []byte, filename string) ([]Recipe, error) {
	root, err := yaml.New().Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe file %s (%w)", filename, err)
	}
	d := decoder{filename: filename}
	if root.Type() != yaml.TypeIDSequence {
		return nil, d.invalid(root, "expected a list of recipes, found a %s", root.Type())
	}
	var errs error
	recipes := make([]Recipe, 0, len(root.Contents()))
	for _, entry := range root.Contents() {
		recipe, err := d.recipe(entry)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		recipes = append(recipes, recipe)
	}
	if errs != nil {
		return nil, errs
	}
	return recipes, nil
}

type decoder struct {
	filename string
}

func (d decoder) invalid(n yaml.Node, format string, args ...any) error {
	return ErrInvalidRecipe{
		Filename: d.filename,
		Line:     n.Line(),
		Column:   n.Column(),
		Reason:   fmt.Sprintf(format, args...),
	}
}

func (d decoder) recipe(n yaml.Node) (Recipe, error) {
	if n.Type() != yaml.TypeIDMap {
		return Recipe{}, d.invalid(n, "expected a map, found a %s", n.Type())
	}
	var errs error
	var recipe Recipe
	for _, key := range n.MapKeys() {
		switch key {
		case "name", "ingredients", "results":
		default:
			errs = multierr.Append(errs, d.invalid(n, "unknown key %q", key))
		}
	}
	nameNode, ok := n.MapValue("name")
	if !ok {
		return Recipe{}, multierr.Append(errs, d.invalid(n, "missing name"))
	}
	name, err := d.itemName(nameNode)
	if err != nil {
		return Recipe{}, multierr.Append(errs, err)
	}
	recipe.Name = string(name)
	if ingredients, ok := n.MapValue("ingredients"); ok {
		recipe.Ingredients, err = d.amounts(ingredients)
		errs = multierr.Append(errs, err)
	}
	if results, ok := n.MapValue("results"); ok {
		recipe.Results, err = d.amounts(results)
		errs = multierr.Append(errs, err)
	}
	return recipe, errs
}

func (d decoder) amounts(n yaml.Node) ([]Amount, error) {
	if n.Type() != yaml.TypeIDSequence {
		return nil, d.invalid(n, "expected a list of items, found a %s", n.Type())
	}
	var errs error
	result := make([]Amount, 0, len(n.Contents()))
	for _, entry := range n.Contents() {
		amount, err := d.amount(entry)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		result = append(result, amount)
	}
	return result, errs
}

// amount decodes either a bare item name or a map with a name and an optional amount.
func (d decoder) amount(n yaml.Node) (Amount, error) {
	switch n.Type() {
	case yaml.TypeIDString:
		item, err := d.itemName(n)
		return Amount{Item: item, Amount: 1}, err
	case yaml.TypeIDMap:
		nameNode, ok := n.MapValue("name")
		if !ok {
			return Amount{}, d.invalid(n, "missing item name")
		}
		item, err := d.itemName(nameNode)
		if err != nil {
			return Amount{}, err
		}
		result := Amount{Item: item, Amount: 1}
		if amountNode, ok := n.MapValue("amount"); ok {
			amount, err := strconv.ParseFloat(amountNode.Value(), 64)
			if err != nil || amountNode.Type() != yaml.TypeIDString || amount < 0 {
				return Amount{}, d.invalid(amountNode, "invalid amount %q for %s", amountNode.Value(), item)
			}
			result.Amount = amount
		}
		return result, nil
	default:
		return Amount{}, d.invalid(n, "expected an item name, found a %s", n.Type())
	}
}

func (d decoder) itemName(n yaml.Node) (depgraph.Item, error) {
	if n.Type() != yaml.TypeIDString || n.Tag() == "!!null" {
		return "", d.invalid(n, "expected an item name")
	}
	if n.Value() == "" {
		return "", d.invalid(n, "item name must not be empty")
	}
	return depgraph.Item(n.Value()), nil
}
