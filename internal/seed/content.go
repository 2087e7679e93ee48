package seed

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type SiteContent struct {
	HeroImages            []Image `json:"hero_images"`
	CustomerGalleryImages []Image `json:"customer_gallery_images"`
}

// Content is the homepage content served to the storefront.
var Content = SiteContent{
	HeroImages: []Image{
		{Src: "/images/hero/hero-1.jpg", Alt: "Elegant woman in a beautiful dress"},
	},
	CustomerGalleryImages: []Image{
		{Src: "/images/gallery/customer-1.jpg", Alt: "Customer in an elegant evening gown"},
		{Src: "/images/gallery/customer-2.jpg", Alt: "Customer in a stylish summer dress"},
		{Src: "/images/gallery/customer-3.jpg", Alt: "Customer looking sharp in a tailored suit"},
		{Src: "/images/gallery/customer-4.jpg", Alt: "Customer at a wedding in a rental tuxedo"},
	},
}
