// Package router provides screen navigation with explicit data flow and
// string routes.
//
// Every screen is registered with a route pattern and a blocking screen
// function. A single transition function decides where each result leads, so
// all navigation rules live in one place and data flow stays traceable.
//
// # Routes
//
// Patterns are literal paths with an optional trailing parameter:
//
//	r.Register(ScreenHome, "home", homeScreen)
//	r.Register(ScreenWeapons, "weapons", weaponsScreen)
//	r.Register(ScreenWeaponDetail, "weaponDetail/{key}", weaponDetailScreen)
//
// Inputs that implement Keyed supply the parameter. The key is path-escaped
// when rendered and unescaped by Resolve, so "plasma rifle" becomes
// "weaponDetail/plasma%20rifle" and back.
//
// # Transitions
//
//	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
//	    switch from {
//	    case ScreenWeapons:
//	        res := result.(ListResult)
//	        if res.Action == ActionSelected {
//	            stack.Push(from, nil, res.Resume)
//	            return ScreenWeaponDetail, DetailInput{Key: res.Key}
//	        }
//	        return ScreenHome, nil
//	    case ScreenWeaponDetail:
//	        if entry := stack.Pop(); entry != nil {
//	            return entry.Screen, entry.Input
//	        }
//	    }
//	    return router.ScreenExit, nil
//	})
//
//	err := r.Run(ctx, ScreenHome, nil)
//
// # Resume State
//
// Screens can return resume state (like the focused row) that gets stored on
// the stack when navigating forward. When navigating back the transition
// function hands it to the screen again through its input. Resume state is
// position only; screens re-fetch their data when shown again.
package router
